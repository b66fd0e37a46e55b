// Package local stores uploads on the node filesystem, served back through
// the configured public base URL.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumacart/storefront/internal/storage"
)

// Store writes blobs under a root directory, mirroring the key as a relative
// path.
type Store struct {
	root    string
	baseURL string
}

// New creates the root directory if needed.
func New(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (*storage.Object, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	return &storage.Object{Key: key, URL: s.url(key)}, nil
}

func (s *Store) Get(ctx context.Context, key string) (*storage.Object, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat upload: %w", err)
	}
	return &storage.Object{Key: key, URL: s.url(key)}, nil
}

// resolve maps a key onto the root, rejecting traversal outside it.
func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("empty storage key")
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Store) url(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
