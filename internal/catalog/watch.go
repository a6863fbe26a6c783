package catalog

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch hot-reloads the catalog whenever a suite file under its directory
// changes, until ctx is cancelled. Catalogs not loaded from a directory
// (the embedded default) have nothing to watch and return immediately.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSuiteFile(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				c.log.Debug("suite changed, reloading", zap.String("file", event.Name))
				if err := c.reload(); err != nil {
					c.log.Warn("catalog reload failed", zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.log.Warn("catalog watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
