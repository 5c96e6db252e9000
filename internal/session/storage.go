package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TokenStorage persists the bearer token between runs. The token is the only
// piece of durable client-side state.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStorage keeps the token in a single file, created 0600.
type FileTokenStorage struct {
	path string
}

// NewFileTokenStorage builds a file-backed storage. An empty path falls back
// to the user config directory.
func NewFileTokenStorage(path string) (*FileTokenStorage, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "lms-client", "token")
	}
	return &FileTokenStorage{path: path}, nil
}

func (f *FileTokenStorage) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileTokenStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryTokenStorage holds the token in memory only. Used by tests and
// one-shot commands that should not touch the filesystem.
type MemoryTokenStorage struct {
	token string
}

func (m *MemoryTokenStorage) Load() (string, error) { return m.token, nil }

func (m *MemoryTokenStorage) Save(token string) error {
	m.token = token
	return nil
}

func (m *MemoryTokenStorage) Clear() error {
	m.token = ""
	return nil
}
