package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"vpiano/internal/config"
	"vpiano/internal/history"
	"vpiano/internal/injector"
	"vpiano/internal/library"
	"vpiano/internal/logging"
	"vpiano/internal/notation"
	"vpiano/internal/playback"
	"vpiano/internal/timing"
)

// playFile parses and plays a single sheet file outside the menu.
func playFile(path string, cfg *config.Config, log *logging.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}
	sheet, err := notation.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	entry := library.Entry{Path: path, Sheet: sheet}
	return playEntry(entry, cfg, nil, log)
}

// playEntry allocates the timeline for a sheet and drives playback,
// recording the play if a history store is available.
func playEntry(entry library.Entry, cfg *config.Config, store *history.Store, log *logging.Logger) error {
	sheet := entry.Sheet

	durations, err := timing.Allocate(sheet.Multiplier(), cfg.Distribution)
	if err != nil {
		return fmt.Errorf("allocate durations: %w", err)
	}
	log.Debug("timeline allocated",
		"title", entry.Title(),
		"tokens", sheet.TokenCount(),
		"length_sec", sheet.Header.Length,
		"single", durations.Single,
		"arpeggio_key", durations.ArpeggioKey,
		"short_pause", durations.ShortPause,
		"pause", durations.Pause,
		"long_pause", durations.LongPause)

	kbd, err := injector.New()
	if err != nil {
		return fmt.Errorf("open keyboard injector: %w", err)
	}
	defer kbd.Close()

	if cfg.Playback.InhibitScreenSaver {
		release, err := injector.InhibitScreenSaver("playing " + entry.Title())
		if err != nil {
			log.Debug("screensaver inhibit unavailable", "error", err)
		} else {
			defer release()
		}
	}

	countdown(cfg.Playback.LeadInSec, entry)

	player := playback.New(kbd,
		playback.WithBlankRest(time.Duration(cfg.Playback.BlankRestMs)*time.Millisecond),
		playback.WithLogger(log.WithComponent("playback")))

	start := time.Now()
	player.Play(sheet, durations)
	elapsed := time.Since(start)

	fmt.Printf("\n Finished %q in %s.\n", entry.Title(), elapsed.Round(time.Second))

	if store != nil {
		_, err := store.Record(history.Play{
			Title:    entry.Title(),
			Writer:   entry.Writer(),
			Length:   sheet.Header.Length,
			Tokens:   sheet.TokenCount(),
			PlayedAt: start,
		})
		if err != nil {
			log.Warn("failed to record play", "error", err)
		}
	}
	return nil
}

// countdown gives the player time to focus the target window.
func countdown(seconds int, entry library.Entry) {
	fmt.Printf("\n Playing %s%q%s by %s (%s)\n",
		colorBold, entry.Title(), colorReset, entry.Writer(),
		formatLength(entry.Sheet.Header.Length))
	if seconds <= 0 {
		return
	}
	fmt.Print(colorDim + " Focus the target window. Starting in " + colorReset)
	for i := seconds; i > 0; i-- {
		fmt.Printf("%s%d%s... ", colorYellow, i, colorReset)
		time.Sleep(time.Second)
	}
	fmt.Println()
}

// formatLength renders a sheet length in M:SS form, matching how it is
// written in the sheet header.
func formatLength(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// describeSheet returns a one-line census of a sheet's tokens.
func describeSheet(sheet *notation.Sheet) string {
	var singles, chords, arpeggios, pauses, shorts, rests int
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
		case notation.ShortPause:
			shorts++
		case notation.BlankRest:
			rests++
		}
	}
	parts := make([]string, 0, 6)
	add := func(n int, name string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, name))
		}
	}
	add(singles, "notes")
	add(chords, "chords")
	add(arpeggios, "arpeggios")
	add(pauses, "pauses")
	add(shorts, "short pauses")
	add(rests, "rests")
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}
