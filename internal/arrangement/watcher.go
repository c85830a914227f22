package arrangement

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long a file must be quiet before a change is reported.
const Debounce = 100 * time.Millisecond

// Change is a reloaded arrangement, or the error that prevented reloading it.
type Change struct {
	File        string
	Arrangement *Arrangement
	Err         error
}

// Watcher monitors one arrangement file for edits using fsnotify. It watches
// the containing directory so editors that save by rename are still seen.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes chan Change // Internal write channel
	done    chan struct{}
	quit    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a new watcher for the arrangement at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 4)
	return &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	close(w.quit)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var last time.Time
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				last = time.Now()
			}

		case <-ticker.C:
			if !last.IsZero() && time.Since(last) >= Debounce {
				last = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.

		case <-w.quit:
			return
		}
	}
}

func (w *Watcher) emit() {
	a, err := Load(w.Path)
	c := Change{File: w.Path, Arrangement: a, Err: err}
	if err == nil {
		if verr := Check(a); verr != nil {
			c = Change{File: w.Path, Err: verr}
		}
	}
	select {
	case w.changes <- c:
	case <-w.quit:
	}
}
