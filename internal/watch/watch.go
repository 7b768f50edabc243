// Package watch reloads an INI file whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"ini-lite/internal/ini"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits after the last event before
// reloading.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the freshly parsed file, or the error that prevented
// parsing it.
type Handler func(f *ini.File, err error)

// Watcher watches a single INI file.
type Watcher struct {
	path     string
	debounce time.Duration
	log      zerolog.Logger
	iniOpts  []ini.Option
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watcher events.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// WithINIOptions sets options for every ini.File the watcher parses.
func WithINIOptions(opts ...ini.Option) Option {
	return func(w *Watcher) {
		w.iniOpts = opts
	}
}

// New returns a Watcher for path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls fn with the current contents of the file, then again after
// every change, until ctx is done. Writers that replace the file by rename
// are followed because the parent directory is watched, not the file.
// Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Debug().Str("path", w.path).Msg("watching file")

	w.reload(fn)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Str("path", w.path).Msg("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug().Str("op", event.Op.String()).Msg("file changed")
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload(fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) reload(fn Handler) {
	f := ini.New(w.iniOpts...)
	err := f.Parse(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		// Mid-replace or not created yet; the next Create brings it back.
		w.log.Debug().Str("path", w.path).Msg("file missing")
		return
	}
	if err != nil {
		w.log.Warn().Err(err).Msg("reload failed")
		fn(nil, err)
		return
	}
	fn(f, nil)
}
