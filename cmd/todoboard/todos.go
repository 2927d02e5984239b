package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jpalmerr/todoboard/internal/client"
	"github.com/spf13/cobra"
)

const (
	defaultBoardAddr = "http://127.0.0.1:3000"
	requestTimeout   = 10 * time.Second
)

// listCmd prints the todos of a running board.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the todos of a running board",
	Long: `Fetch the todo list from a running TodoBoard and print it.

Done items are struck through. Pass --ids to show the id of each todo,
which the done command needs.

Example:
  todoboard list
  todoboard list --ids --addr http://127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// addCmd creates a todo on a running board.
var addCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a todo to a running board",
	Example: `  todoboard add "Buy milk"
  todoboard add "Water plants" --addr http://127.0.0.1:8080`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// doneCmd checks a todo off (or back on) on a running board.
var doneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark a todo as done",
	Long: `Mark a todo on a running TodoBoard as done, or as not done with --undo.

Unknown ids are ignored by the board.

Example:
  todoboard done 3f1c2a9e-...
  todoboard done 3f1c2a9e-... --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, addCmd, doneCmd} {
		cmd.Flags().String("addr", defaultBoardAddr, "base URL of the running board")
		rootCmd.AddCommand(cmd)
	}
	listCmd.Flags().Bool("ids", false, "show todo ids")
	doneCmd.Flags().Bool("undo", false, "mark the todo as not done")
}

func newBoardClient(cmd *cobra.Command) (*client.Client, error) {
	addr, _ := cmd.Flags().GetString("addr")
	return client.New(addr, nil)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := newBoardClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	todos, err := c.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}

	showIDs, _ := cmd.Flags().GetBool("ids")
	renderTodos(cmd.OutOrStdout(), todos, showIDs)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	c, err := newBoardClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	if err := c.Create(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to add todo: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Added %q\n", checkbox(false), args[0])
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	c, err := newBoardClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	undo, _ := cmd.Flags().GetBool("undo")
	if err := c.SetDone(ctx, args[0], !undo); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	if undo {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Reopened %s\n", checkbox(false), args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Done %s\n", checkbox(true), args[0])
	}
	return nil
}
