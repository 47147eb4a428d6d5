package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit on save.
const reloadDelay = 150 * time.Millisecond

// Store hands out the current content snapshot. A snapshot is never
// mutated; reloads swap in a new one, so a page render keeps the catalogs
// it started with.
type Store struct {
	path    string
	current atomic.Pointer[Site]
}

// NewStore loads content from path, or the bundled content when path is
// empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore wraps an already loaded site.
func NewStaticStore(site *Site) *Store {
	s := &Store{}
	s.current.Store(site)
	return s
}

// Site returns the current snapshot.
func (s *Store) Site() *Site {
	return s.current.Load()
}

// Path returns the watched file, empty for bundled content.
func (s *Store) Path() string {
	return s.path
}

// Reload reads the content again. On failure the previous snapshot stays.
func (s *Store) Reload() error {
	var (
		site *Site
		err  error
	)
	if s.path == "" {
		site, err = Default()
	} else {
		site, err = NewLoader(s.path).Load()
	}
	if err != nil {
		return err
	}
	s.current.Store(site)
	return nil
}

// Watch reloads the content whenever the site file or one of its catalog
// item files changes, until ctx is done. Directories are watched rather
// than files so that editors which replace the file on save are picked up.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(s.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	targets := s.watchTargets(watcher)
	slog.Info("Watching content for changes", "path", target, "items_files", len(targets)-1)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(reloadDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Content watcher error", "err", err)
		case <-pending:
			pending = nil
			if err := s.Reload(); err != nil {
				slog.Error("Content reload failed, keeping previous content", "path", target, "err", err)
				continue
			}
			targets = s.watchTargets(watcher)
			slog.Info("Content reloaded", "path", target, "catalogs", len(s.Site().Catalogs))
		}
	}
}

// watchTargets returns the files whose changes trigger a reload and makes
// sure their directories are watched.
func (s *Store) watchTargets(watcher *fsnotify.Watcher) map[string]bool {
	targets := map[string]bool{filepath.Clean(s.path): true}
	watched := map[string]bool{filepath.Dir(filepath.Clean(s.path)): true}
	for _, path := range ItemsPaths(s.path, s.Site()) {
		targets[path] = true
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		watched[dir] = true
		if err := watcher.Add(dir); err != nil {
			slog.Warn("Failed to watch items directory", "path", dir, "err", err)
		}
	}
	return targets
}
