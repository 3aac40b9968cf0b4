package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// Store persists named collections as JSON documents under a data
// directory. Every successful save first snapshots the previous document
// into the backups subdirectory.
type Store struct {
	dataDir   string
	backupDir string
}

// New creates a Store rooted at dataDir, creating the directory tree when
// missing.
func New(dataDir string) (*Store, error) {
	backupDir := filepath.Join(dataDir, "backups")
	for _, dir := range []string{dataDir, backupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create data directory")
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	logger.Info().Str("path", dataDir).Msg("Data directory ensured")

	return &Store{
		dataDir:   dataDir,
		backupDir: backupDir,
	}, nil
}

// Path returns the document path for a collection name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// Save writes v as an indented JSON document, snapshotting the previous
// version first. The write goes through a temp file and rename so a crash
// mid-save never truncates the live document.
func (s *Store) Save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := s.Path(name)
	if _, err := os.Stat(path); err == nil {
		if err := s.snapshot(name); err != nil {
			logger.Warn().Err(err).Str("collection", name).Msg("Backup snapshot failed, saving anyway")
		}
	}

	tmp, err := os.CreateTemp(s.dataDir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// Load reads a collection document into v. A missing document is not an
// error; v is left untouched so callers start from an empty collection.
func (s *Store) Load(name string, v interface{}) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("collection", name).Msg("Collection file missing, starting empty")
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
