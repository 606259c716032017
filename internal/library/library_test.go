package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpen_ScansDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "b.sheet", "#title Beta\n#length 0:30\nabc")
	writeSheet(t, dir, "a.sheet", "#title Alpha\n#length 1:00\nxyz")

	lib, err := Open(dir, nil)
	require.NoError(t, err)

	entries := lib.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Alpha", entries[0].Title(), "entries sorted by title")
	assert.Equal(t, "Beta", entries[1].Title())
	assert.Equal(t, 60.0, entries[0].Sheet.Header.Length)
}

func TestOpen_SkipsMalformedSheets(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "good.sheet", "#length 0:10\nabc")
	writeSheet(t, dir, "bad.sheet", "no length define here")

	lib, err := Open(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, lib.Len(), "bad sheet skipped, good sheet kept")
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestEntry_Fallbacks(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "untitled.sheet", "#length 0:10\nabc")

	lib, err := Open(dir, nil)
	require.NoError(t, err)

	entries := lib.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "untitled", entries[0].Title())
	assert.Equal(t, "Unknown", entries[0].Writer())
}

func TestReload_PicksUpNewSheets(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "one.sheet", "#length 0:10\na")

	lib, err := Open(dir, nil)
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())

	writeSheet(t, dir, "two.sheet", "#length 0:20\nb")
	require.NoError(t, lib.Reload())
	assert.Equal(t, 2, lib.Len())
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "one.sheet", "#length 0:10\na")

	lib, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, lib.Watch())
	defer lib.Stop()

	writeSheet(t, dir, "two.sheet", "#length 0:20\nb")

	require.Eventually(t, func() bool {
		return lib.Len() == 2
	}, 5*time.Second, 20*time.Millisecond, "watcher should pick up the new sheet")
}

func TestEntries_ReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "one.sheet", "#title One\n#length 0:10\na")

	lib, err := Open(dir, nil)
	require.NoError(t, err)

	entries := lib.Entries()
	entries[0].Path = "clobbered"
	assert.NotEqual(t, "clobbered", lib.Entries()[0].Path)
}
