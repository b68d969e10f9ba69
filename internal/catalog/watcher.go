package catalog

import (
	"strings"

	"github.com/fsnotify/fsnotify"

	"fieldbook/internal/logging"
)

// Watcher reloads a file-backed catalog when the file changes on disk.
// URL sources are not watched. A watcher that cannot be established degrades
// to no watching; the session simply keeps its startup catalog.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the catalog source and invokes onChange for every
// write or create event on it. Returns nil (no watcher) for URL sources or
// when the underlying watcher cannot be created.
func Watch(source string, onChange func()) *Watcher {
	log := logging.Get(logging.CategoryCatalog)

	if source == "" || strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("catalog watcher unavailable: %v", err)
		return nil
	}
	if err := fw.Add(source); err != nil {
		log.Warn("cannot watch catalog source %q: %v", source, err)
		fw.Close()
		return nil
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	go w.loop(source, onChange, log)
	return w
}

func (w *Watcher) loop(source string, onChange func(), log *logging.Logger) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				log.Debug("catalog source changed (%s), reloading", ev.Op)
				onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("catalog watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. Safe to call on a nil Watcher.
func (w *Watcher) Close() {
	if w == nil {
		return
	}
	close(w.done)
	w.watcher.Close()
}
