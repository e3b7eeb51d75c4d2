package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// backupTimeLayout matches the original backup naming scheme:
// Spotlight-V100.VolumeConfiguration.<YYYY-MM-DD>.<HH-MM-SS>.plist.
const backupTimeLayout = "2006-01-02.15-04-05"

// backupName returns the timestamped backup file name for the given time.
func backupName(now time.Time) string {
	return fmt.Sprintf("Spotlight-V100.VolumeConfiguration.%s.plist", now.Format(backupTimeLayout))
}

// Backup copies the current store file into dir under a timestamped name
// and returns the backup path. Besides giving the operator a rollback, a
// successful copy is a nondestructive proof that the process can read the
// store at all. Nothing may be written to the store until Backup succeeds.
func (s *Store) Backup(dir string) (string, error) {
	src, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("opening volume configuration for backup: %w", err)
	}
	defer src.Close()

	backupPath := filepath.Join(dir, backupName(time.Now()))

	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating backup %s: %w", backupPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(backupPath)
		return "", fmt.Errorf("copying volume configuration to %s: %w", backupPath, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(backupPath)
		return "", fmt.Errorf("flushing backup %s: %w", backupPath, err)
	}

	return backupPath, nil
}
