package todoboard

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func postForm(t *testing.T, tb *TodoBoard, path string, form url.Values) {
	t.Helper()
	resp, err := http.PostForm("http://"+tb.Addr()+path, form)
	if err != nil {
		t.Fatalf("POST %s error = %v", path, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s status = %d, want 200", path, resp.StatusCode)
	}
}

// changeRecorder collects changes delivered to a callback.
type changeRecorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *changeRecorder) record(c Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *changeRecorder) snapshot() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

func TestWithChangeCallback_ReceivesChanges(t *testing.T) {
	var rec changeRecorder

	tb, err := New(
		WithPort(19200),
		WithLogger(testLogger()),
		WithTodo("seeded", false),
		WithChangeCallback(rec.record),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stop := startBoard(t, tb)
	postForm(t, tb, "/create", url.Values{"title": {"Buy milk"}})
	// stop drains pending callbacks before Start returns
	if err := stop(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	changes := rec.snapshot()
	if len(changes) != 1 {
		t.Fatalf("received %d changes, want 1 (seeds must not trigger callbacks): %+v", len(changes), changes)
	}
	c := changes[0]
	if c.Kind != ChangeCreated {
		t.Errorf("Kind = %v, want %v", c.Kind, ChangeCreated)
	}
	if c.Todo.Title != "Buy milk" || c.Todo.Done || c.Todo.ID == "" {
		t.Errorf("Todo = %+v", c.Todo)
	}
}

func TestWithChangeCallback_UpdateAndUnknownID(t *testing.T) {
	var rec changeRecorder

	tb, err := New(
		WithPort(19201),
		WithLogger(testLogger()),
		WithChangeCallback(rec.record),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stop := startBoard(t, tb)
	postForm(t, tb, "/create", url.Values{"title": {"Buy milk"}})

	// wait for the create to be delivered so we know the id
	deadline := time.Now().Add(time.Second)
	for len(rec.snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	created := rec.snapshot()
	if len(created) == 0 {
		_ = stop()
		t.Fatal("create change was not delivered")
	}
	id := created[0].Todo.ID

	postForm(t, tb, "/update", url.Values{"id": {"nonexistent"}, "done": {"on"}})
	postForm(t, tb, "/update", url.Values{"id": {id}, "done": {"on"}})
	if err := stop(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	changes := rec.snapshot()
	if len(changes) != 2 {
		t.Fatalf("received %d changes, want 2: %+v", len(changes), changes)
	}
	if changes[1].Kind != ChangeUpdated || changes[1].Todo.ID != id || !changes[1].Todo.Done {
		t.Errorf("changes[1] = %+v, want update of %s to done", changes[1], id)
	}
}

func TestWithChangeCallback_Order(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	cb := func(name string) func(Change) {
		return func(Change) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	tb, err := New(
		WithPort(19202),
		WithLogger(testLogger()),
		WithChangeCallback(cb("first")),
		WithChangeCallback(cb("second")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stop := startBoard(t, tb)
	postForm(t, tb, "/create", url.Values{"title": {"x"}})
	if err := stop(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("callback order = %v, want [first second]", order)
	}
}

func TestWithChangeCallback_PanicRecovered(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var rec changeRecorder

	tb, err := New(
		WithPort(19203),
		WithLogger(logger),
		WithChangeCallback(func(Change) { panic("boom") }),
		WithChangeCallback(rec.record),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stop := startBoard(t, tb)
	postForm(t, tb, "/create", url.Values{"title": {"first"}})
	postForm(t, tb, "/create", url.Values{"title": {"second"}})
	if err := stop(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := len(rec.snapshot()); got != 2 {
		t.Errorf("callback after panicking one received %d changes, want 2", got)
	}
	if !strings.Contains(buf.String(), "change callback panicked") {
		t.Errorf("panic should be logged, got: %s", buf.String())
	}
}

func TestWithChangeCallback_SlowCallbackMissesNothing(t *testing.T) {
	const creates = 150
	release := make(chan struct{})
	var rec changeRecorder

	tb, err := New(
		WithPort(19204),
		WithLogger(testLogger()),
		WithChangeCallback(func(c Change) {
			<-release
			rec.record(c)
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stop := startBoard(t, tb)

	var completed atomic.Int32
	var wg sync.WaitGroup
	errs := make(chan error, creates)
	for i := 0; i < creates; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.PostForm("http://"+tb.Addr()+"/create", url.Values{"title": {fmt.Sprintf("todo %d", i)}})
			if err != nil {
				errs <- err
				return
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("status = %d, want 200", resp.StatusCode)
				return
			}
			completed.Add(1)
		}(i)
	}

	// one change held by the callback plus a full queue of 100
	deadline := time.Now().Add(5 * time.Second)
	for completed.Load() < 101 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	close(release)

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("POST /create error = %v", err)
	}

	if err := stop(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	changes := rec.snapshot()
	if len(changes) != creates {
		t.Fatalf("callback received %d changes, want %d", len(changes), creates)
	}
	seen := make(map[string]bool, creates)
	for _, c := range changes {
		if c.Kind != ChangeCreated {
			t.Errorf("Kind = %v, want %v", c.Kind, ChangeCreated)
		}
		seen[c.Todo.Title] = true
	}
	if len(seen) != creates {
		t.Errorf("callback saw %d distinct todos, want %d", len(seen), creates)
	}
}
