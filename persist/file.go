package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileKV keeps one JSON file per slot under a data directory. Writes go to
// a temp file first and are renamed into place so a crash mid-write never
// corrupts the previous snapshot.
type FileKV struct {
	dir string
	mu  sync.Mutex
}

func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	// slot names are fixed constants, but sanitize anyway
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(f.dir, name+".json")
}

func (f *FileKV) Load(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileKV) Save(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
