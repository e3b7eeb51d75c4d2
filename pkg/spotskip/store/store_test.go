package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

// xmlFixture is a minimal volume configuration in the XML plist form
// plutil shows. The UUID key stands in for the keys spotskip must never
// touch.
const xmlFixture = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>ConfigurationVolumeUUID</key>
	<string>0F52A3BD-9F42-4E52-A0A1-0D8E0B7E42A1</string>
	<key>Exclusions</key>
	<array>
		<string>/Users/dev/repos/pipeline/target</string>
		<string>/Users/dev/repos/pipeline/node_modules</string>
	</array>
</dict>
</plist>`

// writeFixture writes content to a temp plist and returns a store for it.
func writeFixture(t *testing.T, content []byte) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VolumeConfiguration.plist")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return New(path)
}

func TestRead_Exclusions(t *testing.T) {
	st := writeFixture(t, []byte(xmlFixture))

	doc, err := st.Read()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/Users/dev/repos/pipeline/target",
		"/Users/dev/repos/pipeline/node_modules",
	}, doc.Exclusions())
}

func TestRead_MissingExclusionsKeyIsEmpty(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{
		"ConfigurationVolumeUUID": "ABC",
	}, plist.XMLFormat)
	require.NoError(t, err)

	st := writeFixture(t, data)
	doc, err := st.Read()
	require.NoError(t, err)
	assert.Empty(t, doc.Exclusions())
}

func TestRead_MissingFile(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing.plist"))
	_, err := st.Read()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_GarbageIsMalformed(t *testing.T) {
	st := writeFixture(t, []byte("this is not a plist"))
	_, err := st.Read()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRead_NonArrayExclusionsIsMalformed(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{
		"Exclusions": "just a string",
	}, plist.XMLFormat)
	require.NoError(t, err)

	st := writeFixture(t, data)
	_, err = st.Read()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRead_NonStringEntryIsMalformed(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{
		"Exclusions": []interface{}{"/ok", 42},
	}, plist.XMLFormat)
	require.NoError(t, err)

	st := writeFixture(t, data)
	_, err = st.Read()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestWrite_RoundTrip(t *testing.T) {
	st := writeFixture(t, []byte(xmlFixture))

	doc, err := st.Read()
	require.NoError(t, err)

	updated := append(doc.Exclusions(), "/Users/dev/repos/web/node_modules")
	doc.SetExclusions(updated)
	require.NoError(t, st.Write(doc))

	reread, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, updated, reread.Exclusions())
}

func TestWrite_PreservesOtherKeys(t *testing.T) {
	st := writeFixture(t, []byte(xmlFixture))

	doc, err := st.Read()
	require.NoError(t, err)
	doc.SetExclusions([]string{"/only/one"})
	require.NoError(t, st.Write(doc))

	data, err := os.ReadFile(st.Path())
	require.NoError(t, err)

	var values map[string]interface{}
	_, err = plist.Unmarshal(data, &values)
	require.NoError(t, err)
	assert.Equal(t, "0F52A3BD-9F42-4E52-A0A1-0D8E0B7E42A1", values["ConfigurationVolumeUUID"])
}

func TestWrite_PreservesBinaryFormat(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{
		"Exclusions": []interface{}{"/a"},
	}, plist.BinaryFormat)
	require.NoError(t, err)

	st := writeFixture(t, data)
	doc, err := st.Read()
	require.NoError(t, err)
	doc.SetExclusions([]string{"/a", "/b"})
	require.NoError(t, st.Write(doc))

	raw, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.True(t, len(raw) > 8 && string(raw[:8]) == "bplist00",
		"binary plists must stay binary after a write")
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	st := writeFixture(t, []byte(xmlFixture))

	doc, err := st.Read()
	require.NoError(t, err)
	require.NoError(t, st.Write(doc))

	entries, err := os.ReadDir(filepath.Dir(st.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "VolumeConfiguration.plist", entries[0].Name())
}

func TestWrite_FailureLeavesOriginalUntouched(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	st := writeFixture(t, []byte(xmlFixture))
	doc, err := st.Read()
	require.NoError(t, err)
	doc.SetExclusions([]string{"/new/entry"})

	// A read-only directory makes the temp-file creation fail before the
	// original is ever opened for writing.
	dir := filepath.Dir(st.Path())
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	require.Error(t, st.Write(doc))

	_ = os.Chmod(dir, 0o755)
	raw, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, xmlFixture, string(raw), "original store must stay byte-for-byte unchanged")
}
