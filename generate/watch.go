package generate

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of filesystem events into one
// regeneration pass.
const debounceWindow = 500 * time.Millisecond

// Watcher regenerates the site whenever the fetched specification tree
// changes. It never refetches; the source on disk is the input.
type Watcher struct {
	generator *Generator
	specsDir  string
	logger    *slog.Logger
}

// NewWatcher creates a watcher over the specs directory.
func NewWatcher(generator *Generator, specsDir string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{generator: generator, specsDir: specsDir, logger: logger}
}

// Watch runs an initial generation pass and then blocks, regenerating on
// change until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	if err := w.generator.Run(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := w.addTree(fsw); err != nil {
		return err
	}
	w.logger.Info("watching for specification changes", "specs_dir", w.specsDir)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if strings.Contains(event.Name, string(filepath.Separator)+".git"+string(filepath.Separator)) {
				continue
			}
			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				_ = w.addTree(fsw)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err.Error())

		case <-pending:
			w.logger.Info("specification source changed, regenerating")
			if err := w.generator.Run(ctx); err != nil {
				w.logger.Warn("regeneration failed", "error", err.Error())
			}
		}
	}
}

// addTree registers every directory under specsDir with the watcher.
// fsnotify watches are not recursive.
func (w *Watcher) addTree(fsw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.specsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		_ = fsw.Add(path)
		return nil
	})
}
