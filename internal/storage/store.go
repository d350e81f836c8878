package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Store reads and writes BoxTime files under one config directory.
type Store struct {
	FS  afero.Fs
	Dir string
	// Now stamps new sessions; nil means time.Now.
	Now func() time.Time
}

// NewStore creates a Store rooted at dir.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{FS: fs, Dir: dir}
}

// ResolveConfigDir returns the per-user config directory for appName.
func ResolveConfigDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func (store *Store) clock() time.Time {
	if store.Now == nil {
		return time.Now()
	}
	return store.Now()
}

func (store *Store) path(name string) string {
	return filepath.Join(store.Dir, name)
}

// readYAML decodes name into out. It reports false when the file does not exist.
func (store *Store) readYAML(name string, out any) (bool, error) {
	rawData, err := afero.ReadFile(store.FS, store.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(rawData, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

func (store *Store) writeYAML(name string, in any) error {
	serialized, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := writeFileAtomic(store.FS, store.path(name), serialized); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (store *Store) remove(name string) error {
	err := store.FS.Remove(store.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// writeFileAtomic writes through a temp file in the same directory and renames it into place.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = fs.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
