package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events editors emit on save.
var watchDebounce = 200 * time.Millisecond

// planWatcher reports changes to one plan file. It watches the parent
// directory so editors that save by rename are still seen.
type planWatcher struct {
	watcher *fsnotify.Watcher
	target  string
}

func newPlanWatcher(planPath string) (*planWatcher, error) {
	target, err := filepath.Abs(planPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", planPath, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	return &planWatcher{watcher: watcher, target: target}, nil
}

func (w *planWatcher) Close() error {
	return w.watcher.Close()
}

// Run calls rebuild after each debounced change until ctx is done. Watcher
// errors go to report.
func (w *planWatcher) Run(ctx context.Context, rebuild func(), report func(error)) error {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, rebuild)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			report(err)
		}
	}
}
