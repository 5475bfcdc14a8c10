package rooms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// StateStore persists the full room map as a single blob.
type StateStore interface {
	Load() (map[int][]vehicle.Vehicle, error)
	Save(rooms map[int][]vehicle.Vehicle) error
}

// FileState keeps the room map in one JSON file. Writes go through a temp
// file and rename so a crash never leaves a half-written blob behind.
type FileState struct {
	path string
}

// NewFileState creates a FileState at the given path.
func NewFileState(path string) *FileState {
	return &FileState{path: path}
}

// Load reads the persisted room map. A missing file is not an error; it
// yields an empty pool.
func (f *FileState) Load() (map[int][]vehicle.Vehicle, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read room state: %w", err)
	}
	var roomMap map[int][]vehicle.Vehicle
	if err := json.Unmarshal(data, &roomMap); err != nil {
		return nil, fmt.Errorf("parse room state: %w", err)
	}
	return roomMap, nil
}

// Save overwrites the persisted room map.
func (f *FileState) Save(rooms map[int][]vehicle.Vehicle) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("encode room state: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".rooms-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write room state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace room state: %w", err)
	}
	return nil
}
