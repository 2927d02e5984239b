package dashboard

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jpalmerr/todoboard/internal/store"
)

func mustRenderer(t *testing.T, title string) *Renderer {
	t.Helper()
	r, err := NewRenderer(title)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func fragment(t *testing.T, r *Renderer, todos []store.Todo) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Fragment(&buf, todos); err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	return buf.String()
}

func TestNewRenderer_DefaultTitle(t *testing.T) {
	r := mustRenderer(t, "")
	if r.Title() != DefaultTitle {
		t.Errorf("Title() = %q, want %q", r.Title(), DefaultTitle)
	}
}

func TestNewRenderer_MissingTemplate(t *testing.T) {
	assets := fstest.MapFS{
		"assets/layout.html": {Data: []byte(`{{define "page"}}<html></html>{{end}}`)},
	}

	_, err := newRenderer(assets, "")
	if err == nil {
		t.Fatal("newRenderer() expected error for missing content template, got nil")
	}
	if !strings.Contains(err.Error(), `"content"`) {
		t.Errorf("error should name the missing template, got: %v", err)
	}
}

func TestNewRenderer_ParseError(t *testing.T) {
	assets := fstest.MapFS{
		"assets/layout.html": {Data: []byte(`{{define "page"}}{{.Title}`)},
	}

	if _, err := newRenderer(assets, ""); err == nil {
		t.Fatal("newRenderer() expected parse error, got nil")
	}
}

func TestFragment_Empty(t *testing.T) {
	out := fragment(t, mustRenderer(t, ""), []store.Todo{})

	if !strings.Contains(out, `hx-post="/create"`) {
		t.Errorf("fragment should contain the creation form, got: %s", out)
	}
	if strings.Contains(out, "<ol") {
		t.Errorf("empty fragment should not render a list, got: %s", out)
	}
}

func TestFragment_Items(t *testing.T) {
	todos := []store.Todo{
		{ID: "id-1", Title: "Buy milk"},
		{ID: "id-2", Title: "Water plants", Done: true},
	}

	out := fragment(t, mustRenderer(t, ""), todos)

	if strings.Count(out, "<li") != 2 {
		t.Errorf("fragment should render 2 items, got: %s", out)
	}
	for _, want := range []string{
		`<input name="id" type="hidden" value="id-1">`,
		`<input name="id" type="hidden" value="id-2">`,
		`class="todo-item done"`,
		`hx-post="/update" checked`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fragment missing %q\nGot: %s", want, out)
		}
	}
	if strings.Count(out, "checked") != 1 {
		t.Errorf("only the done item should be checked, got: %s", out)
	}
}

func TestFragment_Order(t *testing.T) {
	todos := []store.Todo{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
		{ID: "c", Title: "third"},
	}

	out := fragment(t, mustRenderer(t, ""), todos)

	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	third := strings.Index(out, "third")
	if !(first < second && second < third) {
		t.Errorf("items out of order: first=%d second=%d third=%d", first, second, third)
	}
}

func TestFragment_EscapesTitle(t *testing.T) {
	todos := []store.Todo{
		{ID: `"><script>`, Title: `<script>alert("x")</script>`},
	}

	out := fragment(t, mustRenderer(t, ""), todos)

	if strings.Contains(out, "<script>") {
		t.Fatalf("fragment contains unescaped markup: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("fragment should contain escaped title, got: %s", out)
	}
}

func TestFragment_Deterministic(t *testing.T) {
	r := mustRenderer(t, "")
	todos := []store.Todo{{ID: "a", Title: "one"}, {ID: "b", Title: "two", Done: true}}

	if fragment(t, r, todos) != fragment(t, r, todos) {
		t.Error("Fragment() output differs for identical input")
	}
}

func TestPage(t *testing.T) {
	r := mustRenderer(t, `Chores & <b>stuff</b>`)
	todos := []store.Todo{{ID: "a", Title: "Buy milk"}}

	var buf bytes.Buffer
	if err := r.Page(&buf, todos); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Chores &amp; &lt;b&gt;stuff&lt;/b&gt;</title>",
		`id="content"`,
		"Buy milk",
		`hx-post="/create"`,
		"htmx.org",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
