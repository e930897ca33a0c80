package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the pipeline once, then again after every burst of changes in
// the input directory, until ctx is cancelled. onRun receives each outcome.
func (e *Engine) Watch(ctx context.Context, onRun func(*RunResult, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(e.cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", e.cfg.InputDir, err)
	}

	onRun(e.Run(ctx))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if e.ignoreEvent(event) {
				continue
			}
			e.logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(e.cfg.WatchDebounce)
			trigger = timer.C

		case <-trigger:
			trigger = nil
			onRun(e.Run(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watch error", "error", err)
		}
	}
}

// ignoreEvent drops chmod-only events and events on files the pipeline
// writes itself, so outputs inside the input directory cannot retrigger.
func (e *Engine) ignoreEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	return e.ownOutput(event.Name)
}
