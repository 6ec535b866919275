package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// stateKey is the fixed key the serialized cart blob lives under.
const stateKey = "cart.json"

// Store persists the full cart state as a single blob. Implementations must
// return (nil, nil) from Load when no state has been saved yet.
type Store interface {
	Load() (*State, error)
	Save(state State) error
	Clear() error
}

// FileStore keeps the serialized cart in a directory on a filesystem. The
// filesystem is abstracted so tests can run against an in-memory one.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a FileStore rooted at dir on the given filesystem.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart directory %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, stateKey)
}

// Load reads and deserializes the saved cart state, or returns nil when
// nothing has been persisted yet.
func (s *FileStore) Load() (*State, error) {
	data, err := afero.ReadFile(s.fs, s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart state: %w", err)
	}
	return &state, nil
}

// Save serializes the cart state and writes it under the fixed key.
func (s *FileStore) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart state: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart state: %w", err)
	}
	return nil
}

// Clear removes the persisted state. A missing blob is not an error.
func (s *FileStore) Clear() error {
	if err := s.fs.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cart state: %w", err)
	}
	return nil
}
