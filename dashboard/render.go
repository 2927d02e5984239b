package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/jpalmerr/todoboard/internal/store"
)

// DefaultTitle is used when no custom page title is configured.
const DefaultTitle = "Get things done"

const (
	pageTemplate     = "page"
	fragmentTemplate = "content"
)

// Renderer fills the dashboard templates with a list of todos.
//
// A Renderer is immutable after construction and safe for concurrent use.
// All user-supplied text is contextually escaped by html/template.
type Renderer struct {
	tmpl  *template.Template
	title string
}

// NewRenderer parses the embedded templates and returns a [Renderer].
//
// If title is empty, [DefaultTitle] is used.
func NewRenderer(title string) (*Renderer, error) {
	return newRenderer(Assets, title)
}

func newRenderer(assets fs.FS, title string) (*Renderer, error) {
	tmpl, err := template.New("dashboard").ParseFS(assets, "assets/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}

	for _, name := range []string{pageTemplate, fragmentTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("dashboard template %q not defined", name)
		}
	}

	if title == "" {
		title = DefaultTitle
	}

	return &Renderer{tmpl: tmpl, title: title}, nil
}

// Title returns the page title used by [Renderer.Page].
func (r *Renderer) Title() string {
	return r.title
}

// Fragment writes the creation form followed by the todo list.
//
// This is the partial served after every mutation so the client can swap
// it into the page.
func (r *Renderer) Fragment(w io.Writer, todos []store.Todo) error {
	return r.tmpl.ExecuteTemplate(w, fragmentTemplate, todos)
}

// Page writes the full HTML document with the fragment embedded.
func (r *Renderer) Page(w io.Writer, todos []store.Todo) error {
	data := struct {
		Title string
		Todos []store.Todo
	}{
		Title: r.title,
		Todos: todos,
	}
	return r.tmpl.ExecuteTemplate(w, pageTemplate, data)
}
