// Package fsnotify implements the ports.Watcher interface using
// github.com/fsnotify/fsnotify. It watches the simulator outputs
// directory (non-recursively), filters to simulator output files, and
// debounces rapid events: the simulator appends to its output file for
// the whole run and we only want to surface it once it settles.
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long an output file must stay quiet before it is
// reported. Simulator runs write continuously; a burst of Write events
// resets the timer. Variable so tests can shorten it.
var settleDelay = 2 * time.Second

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex

	// inflight tracks onOutput callbacks past the stopped check, so Stop
	// can join them before returning.
	inflight sync.WaitGroup
}

// NewWatcher creates a new outputs-directory watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring dir for simulator output files. onOutput fires
// with the absolute path of each output file once it stops changing.
func (w *Watcher) Watch(dir string, onOutput func(path string)) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		return &os.PathError{Op: "watch", Path: absDir, Err: os.ErrNotExist}
	}
	if err := w.fw.Add(absDir); err != nil {
		return err
	}

	// Settle state: one timer per in-flight output file.
	timers := make(map[string]*time.Timer)
	var tmu sync.Mutex

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name
				if !isSimulatorOutput(path) {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}

				tmu.Lock()
				if t, exists := timers[path]; exists {
					t.Reset(settleDelay)
				} else {
					timers[path] = time.AfterFunc(settleDelay, func() {
						w.mu.Lock()
						if w.stopped {
							w.mu.Unlock()
							return
						}
						w.inflight.Add(1)
						w.mu.Unlock()
						defer w.inflight.Done()

						tmu.Lock()
						delete(timers, path)
						tmu.Unlock()
						onOutput(path)
					})
				}
				tmu.Unlock()

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed — fsnotify recovers automatically

			case <-w.done:
				tmu.Lock()
				for _, t := range timers {
					t.Stop()
				}
				tmu.Unlock()
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources. Once Stop returns no
// further onOutput calls fire: in-flight settle callbacks are joined.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.done)
	err := w.fw.Close()
	w.mu.Unlock()

	w.inflight.Wait()
	return err
}

// isSimulatorOutput matches the "o_<variant>.o" names the runner derives
// for simulator output files.
func isSimulatorOutput(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "o_") && strings.HasSuffix(base, ".o")
}
