package store

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupName(t *testing.T) {
	now := time.Date(2021, 8, 29, 14, 3, 7, 0, time.UTC)
	assert.Equal(t, "Spotlight-V100.VolumeConfiguration.2021-08-29.14-03-07.plist", backupName(now))
}

func TestBackup_CopiesBytes(t *testing.T) {
	st := writeFixture(t, []byte(xmlFixture))
	dir := t.TempDir()

	backupPath, err := st.Backup(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(backupPath))
	assert.Regexp(t,
		regexp.MustCompile(`^Spotlight-V100\.VolumeConfiguration\.\d{4}-\d{2}-\d{2}\.\d{2}-\d{2}-\d{2}\.plist$`),
		filepath.Base(backupPath))

	copied, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, xmlFixture, string(copied))
}

func TestBackup_MissingStoreFails(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing.plist"))
	_, err := st.Backup(t.TempDir())
	assert.Error(t, err)
}

func TestBackup_UnwritableDirFails(t *testing.T) {
	st := writeFixture(t, []byte(xmlFixture))
	_, err := st.Backup(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
