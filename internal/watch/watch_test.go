package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type mockWatcher struct {
	mu       sync.Mutex
	events   chan Event
	errors   chan error
	watching map[string]bool
	closed   bool
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		events:   make(chan Event, 100),
		errors:   make(chan error, 100),
		watching: make(map[string]bool),
	}
}

func (m *mockWatcher) Add(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watching[path] = true
	return nil
}

func (m *mockWatcher) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watching, path)
	return nil
}

func (m *mockWatcher) Events() <-chan Event { return m.events }
func (m *mockWatcher) Errors() <-chan error { return m.errors }

func (m *mockWatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
		close(m.errors)
	}
	return nil
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpCreate | OpWrite, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
	if !(OpCreate | OpWrite).Has(OpWrite) || OpCreate.Has(OpWrite) {
		t.Error("Has mismatch")
	}
}

func TestDebouncedWatcherCoalesces(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 50*time.Millisecond)
	defer dw.Close()

	mock.events <- Event{Path: "/a.wiki", Op: OpCreate}
	mock.events <- Event{Path: "/a.wiki", Op: OpWrite}
	mock.events <- Event{Path: "/a.wiki", Op: OpWrite}

	ev := waitEvent(t, dw.Events())
	if ev.Path != "/a.wiki" {
		t.Errorf("Path = %q", ev.Path)
	}
	if !ev.Op.Has(OpCreate) || !ev.Op.Has(OpWrite) {
		t.Errorf("Op = %b, want create|write", ev.Op)
	}

	select {
	case extra := <-dw.Events():
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncedWatcherFlush(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Hour)
	defer dw.Close()

	mock.events <- Event{Path: "/a.wiki", Op: OpWrite}
	mock.events <- Event{Path: "/b.wiki", Op: OpWrite}

	deadline := time.Now().Add(5 * time.Second)
	for dw.PendingCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if dw.PendingCount() != 2 {
		t.Fatalf("PendingCount = %d", dw.PendingCount())
	}

	dw.Flush()
	seen := map[string]bool{}
	seen[waitEvent(t, dw.Events()).Path] = true
	seen[waitEvent(t, dw.Events()).Path] = true
	if !seen["/a.wiki"] || !seen["/b.wiki"] {
		t.Errorf("seen = %v", seen)
	}
	if dw.PendingCount() != 0 {
		t.Errorf("PendingCount after Flush = %d", dw.PendingCount())
	}
}

func TestDebouncedWatcherDelegates(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 0)

	if err := dw.Add("/x"); err != nil {
		t.Fatal(err)
	}
	if !mock.watching["/x"] {
		t.Error("Add not forwarded")
	}
	if err := dw.Remove("/x"); err != nil {
		t.Fatal(err)
	}
	if mock.watching["/x"] {
		t.Error("Remove not forwarded")
	}

	if err := dw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := dw.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if !mock.closed {
		t.Error("inner watcher not closed")
	}
	if _, ok := <-dw.Events(); ok {
		t.Error("events channel should be closed")
	}
}

func TestFileWatcherAddRemove(t *testing.T) {
	w, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher error = %v", err)
	}
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.wiki")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := w.Add(path); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if !w.IsWatching(path) {
		t.Error("should be watching")
	}
	if err := w.Add(path); err != ErrAlreadyWatching {
		t.Errorf("Add again = %v, want ErrAlreadyWatching", err)
	}
	if err := w.Add(filepath.Join(dir, "missing.wiki")); err != ErrPathNotExist {
		t.Errorf("Add missing = %v, want ErrPathNotExist", err)
	}
	if err := w.Remove(path); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if err := w.Remove(path); err != ErrNotWatching {
		t.Errorf("Remove again = %v, want ErrNotWatching", err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(path); err != ErrWatcherClosed {
		t.Errorf("Add after Close = %v, want ErrWatcherClosed", err)
	}
}

func TestFileWatcherReportsWrites(t *testing.T) {
	w, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher error = %v", err)
	}
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.wiki")
	other := filepath.Join(dir, "other.wiki")
	for _, p := range []string{path, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}

	// Changes to files that are not watched are filtered out.
	if err := os.WriteFile(other, []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("'''y'''"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, w.Events())
	abs, _ := filepath.Abs(path)
	if ev.Path != abs {
		t.Errorf("Path = %q, want %q", ev.Path, abs)
	}
	if !ev.Op.Has(OpWrite) && !ev.Op.Has(OpCreate) {
		t.Errorf("Op = %v", ev.Op)
	}
}
