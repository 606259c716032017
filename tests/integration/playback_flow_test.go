//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vpiano/internal/history"
	"vpiano/internal/injector"
	"vpiano/internal/library"
	"vpiano/internal/logging"
	"vpiano/internal/notation"
	"vpiano/internal/playback"
	"vpiano/internal/timing"
)

const flowSheet = `#title Flow Test
#writer integration
#length 0:30

ab[cd]|[e f]
`

// TestSheetToKeyEvents exercises the full pipeline:
// 1. Write a sheet file into a library directory
// 2. Scan the library and pick up the sheet
// 3. Allocate durations from the declared length
// 4. Play the sheet against a recording injector
// 5. Record the play in the history store
func TestSheetToKeyEvents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flow.txt"), []byte(flowSheet), 0o644))

	log, err := logging.New(&logging.Config{Level: logging.LevelError, Output: "stderr"})
	require.NoError(t, err)

	lib, err := library.Open(dir, log)
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())

	entry := lib.Entries()[0]
	assert.Equal(t, "Flow Test", entry.Title())
	assert.Equal(t, "integration", entry.Writer())

	sheet := entry.Sheet
	require.Equal(t, 30.0, sheet.Header.Length)

	dist := timing.Distribution{
		Short:              0.2,
		Standard:           0.3,
		Long:               0.5,
		PauseRatio:         20,
		ManyFastProportion: 0.15,
	}
	durations, err := timing.Allocate(sheet.Multiplier(), dist)
	require.NoError(t, err)

	rec := injector.NewRecording()
	var slept []time.Duration
	player := playback.New(rec,
		playback.WithLogger(log),
		playback.WithSleep(func(d time.Duration) { slept = append(slept, d) }))

	player.Play(sheet, durations)

	// The blank line after the defines rests once, then ab[cd]|[e f]
	// plays two singles, one chord, a pause, and a two-key arpeggio.
	want := []injector.Op{
		{Key: 'a'}, {Key: 'a', Release: true},
		{Key: 'b'}, {Key: 'b', Release: true},
		{Key: 'c'}, {Key: 'd'}, {Key: 'c', Release: true}, {Key: 'd', Release: true},
		{Key: 'e'}, {Key: 'e', Release: true},
		{Key: 'f'}, {Key: 'f', Release: true},
	}
	assert.Equal(t, want, rec.Ops())

	// One blank rest, three Single-length sleeps, one pause, two
	// arpeggio keys.
	require.Len(t, slept, 7)
	single := time.Duration(durations.Single * float64(time.Second))
	pause := time.Duration(durations.Pause * float64(time.Second))
	arp := time.Duration(durations.ArpeggioKey * float64(time.Second))
	assert.Equal(t, []time.Duration{
		playback.DefaultBlankRest,
		single, single, single, pause, arp, arp,
	}, slept)

	store, err := history.Open(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Record(history.Play{
		Title:    entry.Title(),
		Writer:   entry.Writer(),
		Length:   sheet.Header.Length,
		Tokens:   sheet.TokenCount(),
		PlayedAt: time.Now(),
	})
	require.NoError(t, err)

	plays, err := store.Recent(5)
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Equal(t, "Flow Test", plays[0].Title)
	assert.Equal(t, sheet.TokenCount(), plays[0].Tokens)
}

// TestLibraryRescanAfterEdit checks that a rescan reflects header edits.
func TestLibraryRescanAfterEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.txt")
	require.NoError(t, os.WriteFile(path, []byte("#length 0:10\nabc\n"), 0o644))

	log, err := logging.New(&logging.Config{Level: logging.LevelError, Output: "stderr"})
	require.NoError(t, err)

	lib, err := library.Open(dir, log)
	require.NoError(t, err)
	// Untitled sheets fall back to the file name.
	assert.Equal(t, "song", lib.Entries()[0].Title())

	require.NoError(t, os.WriteFile(path, []byte("#title Renamed\n#length 0:10\nabc\n"), 0o644))
	require.NoError(t, lib.Reload())
	assert.Equal(t, "Renamed", lib.Entries()[0].Title())
}

// TestSheetCensus cross-checks token categories against the parser.
func TestSheetCensus(t *testing.T) {
	sheet, err := notation.Parse(flowSheet)
	require.NoError(t, err)

	var singles, chords, arpeggios, pauses int
	for _, tok := range sheet.Tokens {
		switch tok.(type) {
		case notation.SinglePress:
			singles++
		case notation.Chord:
			chords++
		case notation.Arpeggio:
			arpeggios++
		case notation.Pause:
			pauses++
		}
	}
	assert.Equal(t, 2, singles)
	assert.Equal(t, 1, chords)
	assert.Equal(t, 1, arpeggios)
	assert.Equal(t, 1, pauses)
}
