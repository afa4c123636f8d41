package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitFor(t *testing.T, changes <-chan Change, op Op) Change {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Op == op {
				return c
			}
		case <-timeout:
			t.Fatalf("no %s change observed", op)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	changes := make(chan Change, 16)
	w := &Watcher{
		Path:     path,
		Debounce: 10 * time.Millisecond,
		OnChange: func(c Change) { changes <- c },
	}

	err := w.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %s", err.Error())
	}
	defer w.Close()

	err = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("ignored"), 0600)
	if err != nil {
		t.Fatalf("os.WriteFile: %s", err.Error())
	}

	err = os.WriteFile(path, []byte(`{"ok":true}`), 0600)
	if err != nil {
		t.Fatalf("os.WriteFile: %s", err.Error())
	}

	c := waitFor(t, changes, Written)
	if string(c.Data) != `{"ok":true}` {
		t.Errorf("unexpected data: %q", c.Data)
	}
	if c.Path != path {
		t.Errorf("expected path %s, got %s", path, c.Path)
	}

	err = os.Remove(path)
	if err != nil {
		t.Fatalf("os.Remove: %s", err.Error())
	}
	waitFor(t, changes, Removed)
}

func TestWatcherStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		Path:     filepath.Join(t.TempDir(), "session.json"),
		OnChange: func(Change) {},
	}

	err := w.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %s", err.Error())
	}
	cancel()

	select {
	case <-w.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close after stop: %s", err.Error())
	}
}

func TestWatcherValidation(t *testing.T) {
	w := &Watcher{OnChange: func(Change) {}}
	if err := w.Start(context.Background()); err == nil {
		t.Errorf("expected an error for a missing path")
	}

	w = &Watcher{Path: filepath.Join(t.TempDir(), "x")}
	if err := w.Start(context.Background()); err == nil {
		t.Errorf("expected an error for a missing handler")
	}

	w = &Watcher{Path: "/does/not/exist/x", OnChange: func(Change) {}}
	if err := w.Start(context.Background()); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}

func TestReadLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	err := os.WriteFile(path, []byte("data"), 0600)
	if err != nil {
		t.Fatalf("os.WriteFile: %s", err.Error())
	}

	b, err := readLoop(path)
	if err != nil {
		t.Fatalf("readLoop: %s", err.Error())
	}
	if string(b) != "data" {
		t.Errorf("expected %q, got %q", "data", b)
	}

	_, err = readLoop(path + ".missing")
	if err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
