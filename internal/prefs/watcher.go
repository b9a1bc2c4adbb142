package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads preferences when the file changes on disk, so edits made
// by another griddy instance or a text editor reach the running UI.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Prefs)
	logger   *zap.Logger
}

// NewWatcher watches path and calls onChange with the reloaded preferences.
// onChange runs on the watcher goroutine.
func NewWatcher(path string, onChange func(Prefs), logger *zap.Logger) (*Watcher, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     resolved,
		debounce: defaultDebounce,
		onChange: onChange,
		logger:   logger.Named("prefs"),
	}, nil
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run watches until ctx is cancelled. The parent directory is watched
// rather than the file so editors that save by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching prefs", zap.String("path", w.path))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("prefs watcher error", zap.Error(err))

		case <-timer.C:
			data, err := os.ReadFile(w.path)
			if err != nil {
				w.logger.Debug("prefs reload skipped", zap.Error(err))
				continue
			}
			p := Parse(data)
			w.logger.Info("prefs changed on disk",
				zap.Int("rows", p.NumRows),
				zap.Int("cols", p.NumCols),
				zap.Int("speed", p.TypingSpeed),
			)
			if w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
