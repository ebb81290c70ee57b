package faq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store exposes the current FAQ list to the intent router and the
// placeholder resolver. Implementations decide their own freshness policy.
type Store interface {
	Load() []Entry
}

// FileStore reads entries from a JSON file and caches them until the file
// changes. A missing file is not an error: the store simply serves an empty
// list, so the FAQ feature degrades instead of failing the request.
type FileStore struct {
	path string

	mu      sync.RWMutex
	entries []Entry
	loaded  bool
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the cached entries, reading the file first if the cache is
// cold or has been invalidated.
func (s *FileStore) Load() []Entry {
	s.mu.RLock()
	if s.loaded {
		entries := s.entries
		s.mu.RUnlock()
		return entries
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.entries = readEntries(s.path)
		s.loaded = true
	}
	return s.entries
}

// Invalidate drops the cache so the next Load re-reads the backing file.
func (s *FileStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.entries = nil
	s.mu.Unlock()
}

// Watch invalidates the cache whenever the backing file is written, created
// or renamed. It blocks until ctx is cancelled.
func (s *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Printf("[faq] watching %s for changes", s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Printf("[faq] %s changed, reloading", s.path)
			s.Invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				log.Printf("[faq] watcher error: %v", err)
			}
		}
	}
}

func readEntries(path string) []Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[faq] read %s: %v", path, err)
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("[faq] parse %s: %v", path, err)
		return nil
	}
	return entries
}

// StaticStore serves a fixed entry list, used by tests and seeding.
type StaticStore struct {
	items []Entry
}

// NewStaticStore returns a store preloaded with the supplied entries.
func NewStaticStore(items []Entry) *StaticStore {
	return &StaticStore{items: append([]Entry(nil), items...)}
}

// Load returns the fixed entry list.
func (s *StaticStore) Load() []Entry {
	return append([]Entry(nil), s.items...)
}
