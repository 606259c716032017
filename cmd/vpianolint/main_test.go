package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vpiano/internal/notation"
	"vpiano/internal/timing"
)

func checkDist() timing.Distribution {
	return timing.Distribution{
		Short:              0.2,
		Standard:           0.3,
		Long:               0.5,
		PauseRatio:         20,
		ManyFastProportion: 0.15,
	}
}

func TestLintReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.txt")
	content := "#title Song\n#writer Me\n#length 0:20\nab[cd]|[e f]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rep, err := lint(path, checkDist(), 1.0)
	require.NoError(t, err)

	assert.Equal(t, "Song", rep.Title)
	assert.Equal(t, "Me", rep.Writer)
	assert.Equal(t, 20.0, rep.LengthSec)
	assert.Equal(t, 5, rep.Tokens)
	assert.InDelta(t, 4.0, rep.Multiplier, 1e-12)
	assert.Greater(t, rep.EstimateSec, 0.0)
}

func TestLintMalformedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("#length 0:10\na]b\n"), 0o644))

	_, err := lint(path, checkDist(), 1.0)
	require.ErrorIs(t, err, notation.ErrCloseWithoutOpen)
}

func TestEstimateUsesConfiguredBlankRest(t *testing.T) {
	sheet, err := notation.Parse("#length 0:10\na\n\nb\n")
	require.NoError(t, err)

	durations, err := timing.Allocate(sheet.Multiplier(), checkDist())
	require.NoError(t, err)

	base := estimate(sheet, durations, 0)
	long := estimate(sheet, durations, 2.5)

	// One blank rest in the sheet: the estimates differ by exactly the
	// configured rest duration.
	assert.InDelta(t, 2.5, long-base, 1e-9)
}

func TestCollectExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("#length 0:10\na"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("#length 0:10\nb"), 0o644))

	paths, err := collect([]string{dir})
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}
