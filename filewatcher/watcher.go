// Package filewatcher reports writes to and removals of a single file.
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = time.Second

type Op int

const (
	Written Op = iota + 1
	Removed
)

func (op Op) String() string {
	switch op {
	case Written:
		return "written"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Change is one observed change. Data holds the file contents after a write.
type Change struct {
	Op   Op
	Path string
	Data []byte
}

// Watcher watches the directory holding Path, so the file may be created,
// replaced or removed while it is being watched. Writes are reported at most
// once per Debounce.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(Change)

	fsw      *fsnotify.Watcher
	lastRead time.Time
	mu       sync.Mutex
	done     chan struct{}
}

// Start begins watching and returns once the watch is in place. It stops
// when ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if w.Path == "" {
		return errors.New("no file to watch")
	}
	if w.OnChange == nil {
		return errors.New("no change handler")
	}
	if w.Debounce == 0 {
		w.Debounce = DefaultDebounce
	}
	w.Path = filepath.Clean(w.Path)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}

	err = fsw.Add(filepath.Dir(w.Path))
	if err != nil {
		fsw.Close()
		return fmt.Errorf("watcher.Add: %w", err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	go w.watchResponder(ctx)
	return nil
}

// Close stops the watch and waits for the responder to exit.
func (w *Watcher) Close() error {
	if w.fsw == nil {
		return nil
	}
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) watchResponder(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			w.fsw.Close()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			w.react(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Println("watcher.Errors: ", err)
		}
	}
}

func (w *Watcher) react(event fsnotify.Event) {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		w.lastRead = time.Time{}
		w.mu.Unlock()

		w.OnChange(Change{Op: Removed, Path: w.Path})
		return
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		err := w.reactToFileWrite()
		if err != nil {
			log.Printf("reactToFileWrite: %s", err.Error())
		}
	}
}

func (w *Watcher) reactToFileWrite() error {
	w.mu.Lock()
	if time.Since(w.lastRead) < w.Debounce {
		w.mu.Unlock()
		return nil
	}
	w.lastRead = time.Now()
	w.mu.Unlock()

	b, err := readLoop(w.Path)
	if err != nil {
		return fmt.Errorf("readLoop: %w", err)
	}

	w.OnChange(Change{Op: Written, Path: w.Path, Data: b})
	return nil
}

// readLoop tries to read the file a lot
func readLoop(path string) ([]byte, error) {
	for i := 0; i < 100; i++ {
		b, err := readFile(path)
		if err != nil {
			return nil, err
		}

		if len(b) == 0 {
			// sometimes we get an empty file, probably because the file is being written to
			time.Sleep(time.Millisecond * 100)
			continue
		}

		return b, nil
	}

	return nil, fmt.Errorf("readLoop: too many retries")
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}
	return b, nil
}
