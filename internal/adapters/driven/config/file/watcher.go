package file

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sift/internal/logger"
)

// Change identifies which on-disk configuration was reloaded.
type Change string

const (
	ChangeConfig  Change = "config"
	ChangePrompts Change = "prompts"
)

const defaultWatchDebounce = 200 * time.Millisecond

// Watcher reloads the config and prompt stores when their files are edited
// outside the running process, for example by `sift config set` in another
// terminal or by hand in an editor.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   *ConfigStore
	prompts  *PromptStore
	debounce time.Duration
	changes  chan Change
	done     chan struct{}
	once     sync.Once
}

// NewWatcher starts watching the directories of the given stores.
// Either store may be nil.
func NewWatcher(config *ConfigStore, prompts *PromptStore, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}

	w := &Watcher{
		watcher:  fw,
		config:   config,
		prompts:  prompts,
		debounce: debounce,
		changes:  make(chan Change, 4),
		done:     make(chan struct{}),
	}

	// Directories rather than files: saves replace the file via rename,
	// which drops a file-level watch.
	if config != nil {
		if err := fw.Add(filepath.Dir(config.Path())); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	if prompts != nil {
		if err := prompts.Seed(); err != nil {
			_ = fw.Close()
			return nil, err
		}
		if err := fw.Add(prompts.Dir()); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

// Changes delivers a value after each debounced reload.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[Change]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if kind, ok := w.classify(event.Name); ok {
				pending[kind] = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)

		case <-ticker.C:
			now := time.Now()
			for kind, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, kind)
				w.reload(kind)
			}
		}
	}
}

// classify maps a changed path to the store that owns it.
func (w *Watcher) classify(path string) (Change, bool) {
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".tmp") || strings.HasSuffix(name, ".lock") {
		return "", false
	}
	if w.config != nil && path == w.config.Path() {
		return ChangeConfig, true
	}
	if w.prompts != nil && filepath.Dir(path) == w.prompts.Dir() && strings.HasSuffix(name, promptExt) {
		return ChangePrompts, true
	}
	return "", false
}

func (w *Watcher) reload(kind Change) {
	switch kind {
	case ChangeConfig:
		if err := w.config.Load(); err != nil {
			logger.Warn("reload config: %v", err)
			return
		}
	case ChangePrompts:
		w.prompts.Reload()
	}
	logger.Debug("reloaded %s", kind)

	select {
	case w.changes <- kind:
	default:
	}
}
