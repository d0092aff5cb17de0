package history

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists the serialized recent-queries list under a single slot.
// Implementations may fail; the store treats every failure as soft.
type Storage interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// fileStorage keeps the list in a single JSON file
type fileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage slot
func NewFileStorage(path string) Storage {
	return &fileStorage{path: path}
}

func (fs *fileStorage) Read() ([]byte, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run, nothing persisted yet
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return data, nil
}

func (fs *fileStorage) Write(data []byte) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
