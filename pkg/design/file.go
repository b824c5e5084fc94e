package design

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileStore keeps each design as a JSON metadata file next to a blob file
// holding the artifact bytes.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store in dir. An empty dir uses
// [DefaultDir].
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create design dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns $XDG_DATA_HOME/cafeplan/designs, falling back to
// ~/.local/share/cafeplan/designs.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cafeplan", "designs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "cafeplan", "designs"), nil
}

// Path returns the store directory.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) metaPath(id string) string { return filepath.Join(s.dir, id+".json") }
func (s *FileStore) blobPath(id string) string { return filepath.Join(s.dir, id+".bin") }

func (s *FileStore) Save(_ context.Context, d *Design) error {
	if err := validate(d); err != nil {
		return err
	}
	meta := *d
	meta.Data = nil
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal design: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.blobPath(d.ID), d.Data, 0o600); err != nil {
		return fmt.Errorf("write design blob: %w", err)
	}
	if err := os.WriteFile(s.metaPath(d.ID), data, 0o600); err != nil {
		return fmt.Errorf("write design metadata: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Design, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	d, err := s.readMeta(id)
	if err == nil && !d.IsExpired() {
		d.Data, err = os.ReadFile(s.blobPath(id))
	}
	s.mu.RUnlock()

	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("read design %s: %w", id, err)
	}
	if d.IsExpired() {
		_ = s.Delete(context.Background(), id)
		return nil, expired(id)
	}
	return d, nil
}

func (s *FileStore) readMeta(id string) (*Design, error) {
	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, err
	}
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse design: %w", err)
	}
	return &d, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if checkID(id) != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(id)
}

func (s *FileStore) remove(id string) error {
	for _, p := range []string{s.metaPath(id), s.blobPath(id)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove design file: %w", err)
		}
	}
	return nil
}

func (s *FileStore) Cleanup(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read design dir: %w", err)
	}
	now := time.Now()
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		d, err := s.readMeta(id)
		if err != nil {
			continue
		}
		if now.After(d.ExpiresAt) {
			if err := s.remove(id); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
