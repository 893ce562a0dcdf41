package ports

// Watcher monitors the simulator outputs directory for finished output
// files. The adapter (fsnotify) filters to simulator output names before
// invoking onOutput. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring dir (non-recursively). onOutput is called
	// with the absolute path of each simulator output file that appears
	// or finishes writing. The callback may be invoked from any
	// goroutine. Returns an error if the directory doesn't exist or
	// permissions are insufficient.
	Watch(dir string, onOutput func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop
	// returns, no further onOutput calls will fire. Safe to call
	// multiple times.
	Stop() error
}
