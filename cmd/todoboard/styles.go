package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jpalmerr/todoboard/internal/store"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	idStyle      = lipgloss.NewStyle().Faint(true)
)

func checkbox(done bool) string {
	if done {
		return successStyle.Render("☑")
	}
	return pendingStyle.Render("☐")
}

// renderTodos writes one line per todo, followed by a short summary.
func renderTodos(w io.Writer, todos []store.Todo, showIDs bool) {
	if len(todos) == 0 {
		fmt.Fprintln(w, idStyle.Render("No todos yet."))
		return
	}

	done := 0
	var b strings.Builder
	for _, td := range todos {
		title := td.Title
		if td.Done {
			done++
			title = doneStyle.Render(title)
		}
		b.WriteString(checkbox(td.Done))
		b.WriteString(" ")
		b.WriteString(title)
		if showIDs {
			b.WriteString("  ")
			b.WriteString(idStyle.Render(td.ID))
		}
		b.WriteString("\n")
	}

	fmt.Fprint(w, b.String())
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d/%d done", done, len(todos))))
}
