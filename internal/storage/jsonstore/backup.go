package jsonstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oguzk/eduportal/internal/pkg/logger"
)

const backupTimeLayout = "20060102_150405"

// snapshot copies the current document for name into the backup directory
// with a timestamped filename.
func (s *Store) snapshot(name string) error {
	src := s.Path(name)
	stamp := time.Now().Format(backupTimeLayout)
	dst := filepath.Join(s.backupDir, fmt.Sprintf("%s_%s.json", name, stamp))
	return copyFile(src, dst)
}

// BackupAll snapshots every existing collection document.
func (s *Store) BackupAll() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		if err := s.snapshot(name); err != nil {
			return fmt.Errorf("failed to back up %s: %w", name, err)
		}
	}
	logger.Info().Str("dir", s.backupDir).Msg("Backup completed")
	return nil
}

// ListBackups returns backup filenames, newest first. An empty name lists
// every backup; otherwise only those for the named collection.
func (s *Store) ListBackups(name string) ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name != "" && !strings.HasPrefix(entry.Name(), name+"_") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// CleanupBackups deletes backups older than maxAge and returns the number
// removed.
func (s *Store) CleanupBackups(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.backupDir, entry.Name())); err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to delete old backup")
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Old backups cleaned up")
	}
	return removed, nil
}

// Export copies every collection document into destDir.
func (s *Store) Export(destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		src := filepath.Join(s.dataDir, entry.Name())
		dst := filepath.Join(destDir, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("failed to export %s: %w", entry.Name(), err)
		}
	}
	logger.Info().Str("dir", destDir).Msg("Data exported")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
