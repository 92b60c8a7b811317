package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/opd-ai/go-gravity/pkg/logging"
)

// Watcher reloads a config file when it changes on disk. Only configs that
// pass Validate are delivered.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *SimulationConfig
	logger  *logging.Logger
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which replace the file on save are still seen.
func NewWatcher(path string, logger *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	if _, err := FormatFromPath(abs); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	if logger == nil {
		logger = logging.Discard()
	}

	return &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *SimulationConfig, 1),
		logger:  logger,
	}, nil
}

// Updates delivers reloaded configurations. Only the newest pending one is kept.
func (w *Watcher) Updates() <-chan *SimulationConfig {
	return w.updates
}

// Run processes file events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(ctx, "config watcher error", err, "path", w.path)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		// partial writes are common; the next event will retry
		w.logger.Warn(ctx, "config reload failed", "path", w.path, "error", err.Error())
		return
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn(ctx, "reloaded config is invalid", "path", w.path, "error", err.Error())
		return
	}

	// replace any update the consumer has not picked up yet
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info(ctx, "config reloaded", "path", w.path, "bodies", len(cfg.Bodies))
}

// Close stops the underlying file watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
