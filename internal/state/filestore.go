package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateFilename is the name of the state file inside the peon home
// directory. The leading dot keeps it out of the user's way next to
// config.json.
const StateFilename = ".state.json"

// FileStore persists session state as a JSON file. Writes are
// last-writer-wins with no locking; concurrent hook invocations racing
// on the file is a documented, accepted hazard.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore rooted at the given peon home dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		path: filepath.Join(dir, StateFilename),
	}
}

// Load reads the state file. A missing or malformed file yields a fresh
// empty state rather than an error, per the degrade-to-no-op policy.
func (f *FileStore) Load() (*State, error) {
	st := New()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return st, nil
	}

	if err := json.Unmarshal(data, st); err != nil {
		return New(), nil
	}

	st.ensureMaps()

	return st, nil
}

// Save writes the state file, creating the parent directory if needed.
func (f *FileStore) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

// Ensure FileStore implements Store at compile time.
var _ Store = (*FileStore)(nil)
