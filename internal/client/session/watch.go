package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches the burst of events a single sqlite commit produces.
const watchDebounce = 100 * time.Millisecond

// Watch follows writes to the database file at dbPath made by other
// processes and publishes the resulting session through the same listeners
// as Save and Clear. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, dbPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("session watch: %w", err)
	}
	defer w.Close()

	dir, base := filepath.Split(filepath.Clean(dbPath))
	if dir == "" {
		dir = "."
	}
	// The directory, not the file: sqlite replaces its journal files and
	// some editors and tools replace the database itself.
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("session watch %s: %w", dir, err)
	}
	s.log.Debug(ctx, "watching session database", "path", dbPath)

	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), base) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = true
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn(ctx, "session watcher error", "error", err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			if err := s.refresh(ctx); err != nil && ctx.Err() == nil {
				s.log.Warn(ctx, "session refresh failed", "error", err)
			}
		}
	}
}
