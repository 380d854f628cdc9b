// Package jsonfile persists record collections as whole JSON array files.
//
// Each collection lives in one file under the data directory. Reads return
// an empty collection when the file is absent or unparsable; writes
// serialize the full collection and move it into place with a temp-file
// rename so readers never observe a partial file.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Collection file names.
const (
	UsersCollection = "users"
	TasksCollection = "tasks"
)

// Store implements whole-file JSON persistence for record collections.
type Store struct {
	dataDir string
	log     *zap.Logger
}

// NewStore creates a Store rooted at dataDir, creating the directory if
// needed.
func NewStore(dataDir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &Store{dataDir: dataDir, log: log}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

// ReadAll decodes a full collection into out. A missing file or invalid
// content yields the empty collection, not an error.
func (s *Store) ReadAll(collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		s.log.Error("failed to read collection file",
			zap.String("collection", collection), zap.Error(err))
		return fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Defensive default: a corrupt file reads as empty rather than
		// taking the whole service down.
		s.log.Warn("collection file is not valid JSON, treating as empty",
			zap.String("collection", collection), zap.Error(err))
		return nil
	}

	return nil
}

// WriteAll serializes the full collection and atomically replaces the
// backing file.
func (s *Store) WriteAll(collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dataDir, collection+"-*.tmp")
	if err != nil {
		s.log.Error("failed to create temp file",
			zap.String("collection", collection), zap.Error(err))
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}

	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		s.log.Error("failed to replace collection file",
			zap.String("collection", collection), zap.Error(err))
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}

	return nil
}
