// Package storage provides download asset storage implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopfront/backend/internal/application/fulfillment"
)

// Ensure LocalAssetStorage implements AssetStorage
var _ fulfillment.AssetStorage = (*LocalAssetStorage)(nil)

// LocalAssetStorage serves assets from a directory on disk.
type LocalAssetStorage struct {
	dir string
}

// NewLocalAssetStorage creates a local storage rooted at dir.
func NewLocalAssetStorage(dir string) (*LocalAssetStorage, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset directory %s is not a directory", dir)
	}
	return &LocalAssetStorage{dir: dir}, nil
}

// Open opens the asset with the given key. Keys are bare filenames;
// anything resolving outside the asset directory is rejected.
func (s *LocalAssetStorage) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return nil, 0, fmt.Errorf("invalid asset key %q", key)
	}

	path := filepath.Join(s.dir, key)
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open asset %s: %w", key, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("stat asset %s: %w", key, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("asset %s is a directory", key)
	}

	return file, info.Size(), nil
}
