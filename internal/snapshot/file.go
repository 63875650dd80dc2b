package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/nikolayk812/figurestore/internal/port"
	"github.com/spf13/afero"
)

const fileExt = ".json"

type fileSnapshots struct {
	fs  afero.Fs
	dir string

	mu sync.Mutex
}

// NewFile keeps one file per key under dir, creating dir when missing.
// Saves replace the file through a rename so a crash never leaves half a snapshot.
func NewFile(fsys afero.Fs, dir string) (port.SnapshotRepository, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fs is nil")
	}
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fs.MkdirAll: %w", err)
	}

	return &fileSnapshots{
		fs:  fsys,
		dir: dir,
	}, nil
}

func (f *fileSnapshots) GetSnapshot(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("key is empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	payload, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("afero.ReadFile: %w", err)
	}

	return payload, true, nil
}

func (f *fileSnapshots) SaveSnapshot(_ context.Context, key string, payload []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := afero.TempFile(f.fs, f.dir, "snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("afero.TempFile: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(payload)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := f.fs.Rename(tmpName, f.path(key)); err != nil {
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("fs.Rename: %w", err)
	}

	return nil
}

// path escapes the key so any key maps to a single file inside dir.
func (f *fileSnapshots) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+fileExt)
}
