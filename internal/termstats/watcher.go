package termstats

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the table whenever the backing file changes. Editors and
// batch jobs typically replace the file atomically (rename), which removes
// the watched inode, so the path is re-added after such events. Blocks until
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.defaultPath); err != nil {
		return fmt.Errorf("watch %s: %w", s.defaultPath, err)
	}
	s.logger.Info("watching term stats file", zap.String("path", s.defaultPath))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// Give the writer a moment to finish the replacement.
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(s.defaultPath); os.IsNotExist(err) {
					s.logger.Warn("term stats file removed, keeping current snapshot",
						zap.String("path", s.defaultPath))
					continue
				}
				if err := watcher.Add(s.defaultPath); err != nil {
					s.logger.Warn("re-watch term stats file", zap.Error(err))
					continue
				}
			}

			if err := s.Reload(""); err != nil {
				s.logger.Warn("reload term stats", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("term stats watcher", zap.Error(err))
		}
	}
}
