package engine

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a YAML config file whenever it changes on disk,
// useful for tuning window and world settings while the game runs.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	Events  chan Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchConfig watches the config file at path. Every successful reload
// is delivered on Events, parse and watch failures on Errors.
func WatchConfig(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files on save,
	// which would drop a watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &ConfigWatcher{
		watcher: w,
		path:    path,
		Events:  make(chan Config, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed by the watcher
// goroutine once it has shut down.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run owns Events and Errors: only this goroutine sends on them, and it
// closes them when it returns. Every send races against closeCh so Close
// never strands a blocked delivery.
func (w *ConfigWatcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !sameFile(event.Name, w.path) {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now

			cfg, err := LoadConfig(w.path)
			if err != nil {
				select {
				case w.Errors <- err:
				case <-w.closeCh:
					return
				}
				continue
			}
			select {
			case w.Events <- cfg:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func sameFile(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}
