// Command vpianolint checks sheet files without playing them.
//
// It parses each file, reports notation errors with the offending
// path, and prints a summary of the header and token census plus the
// per-token durations the player would use. This makes it suitable
// for validating a sheet collection in CI or before sharing it.
//
// Usage:
//
//	vpianolint [flags] <file-or-dir>...
//
// Examples:
//
//	# Check a single sheet
//	vpianolint megalovania.txt
//
//	# Check a whole collection quietly
//	vpianolint -quiet ~/sheets
//
//	# Show the durations a non-default distribution would produce
//	vpianolint -config custom.toml song.txt
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vpiano/internal/config"
	"vpiano/internal/notation"
	"vpiano/internal/timing"
)

var version = "dev"

type report struct {
	Path        string           `json:"path"`
	Title       string           `json:"title,omitempty"`
	Writer      string           `json:"writer,omitempty"`
	LengthSec   float64          `json:"length_sec"`
	Tokens      int              `json:"tokens"`
	Multiplier  float64          `json:"multiplier"`
	Durations   timing.Durations `json:"durations"`
	EstimateSec float64          `json:"estimate_sec"`
}

func main() {
	configPath := flag.String("config", "", "config file supplying the duration distribution")
	jsonOut := flag.Bool("json", false, "print reports as JSON")
	quiet := flag.Bool("quiet", false, "only print errors")
	versionFlag := flag.Bool("version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vpianolint - Check vpiano sheet files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file-or-dir>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println("vpianolint", version)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(2)
	}
	if err := cfg.Distribution.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	paths, err := collect(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	blankRestSec := float64(cfg.Playback.BlankRestMs) / 1000

	failed := 0
	for _, path := range paths {
		rep, err := lint(path, cfg.Distribution, blankRestSec)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		if *quiet {
			continue
		}
		if *jsonOut {
			out, _ := json.MarshalIndent(rep, "", "  ")
			fmt.Println(string(out))
		} else {
			printReport(rep)
		}
	}

	if !*quiet {
		fmt.Printf("%d file(s) checked, %d failed\n", len(paths), failed)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// collect expands directories into the sheet files they contain.
func collect(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func lint(path string, dist timing.Distribution, blankRestSec float64) (report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return report{}, err
	}
	sheet, err := notation.Parse(string(data))
	if err != nil {
		return report{}, err
	}

	durations, err := timing.Allocate(sheet.Multiplier(), dist)
	if err != nil {
		return report{}, err
	}

	rep := report{
		Path:       path,
		Title:      sheet.Header.Title,
		Writer:     sheet.Header.Writer,
		LengthSec:  sheet.Header.Length,
		Tokens:     sheet.TokenCount(),
		Multiplier: sheet.Multiplier(),
		Durations:  durations,
	}
	rep.EstimateSec = estimate(sheet, durations, blankRestSec)
	return rep, nil
}

// estimate sums the sleeps playback would perform, in seconds. Blank
// rests are counted at the configured blank-rest duration so the
// estimate matches what the player would do.
func estimate(sheet *notation.Sheet, d timing.Durations, blankRestSec float64) float64 {
	var total float64
	for _, tok := range sheet.Tokens {
		switch t := tok.(type) {
		case notation.SinglePress:
			total += d.Single
		case notation.Chord:
			total += d.Single
		case notation.Arpeggio:
			total += float64(len(t.Keys)) * d.ArpeggioKey
		case notation.ShortPause:
			total += d.ShortPause
		case notation.Pause:
			total += d.Pause
		case notation.BlankRest:
			total += blankRestSec
		}
	}
	return total
}

func printReport(rep report) {
	title := rep.Title
	if title == "" {
		title = "(untitled)"
	}
	writer := rep.Writer
	if writer == "" {
		writer = "Unknown"
	}
	fmt.Printf("%s: %q by %s\n", rep.Path, title, writer)
	fmt.Printf("  length %.1fs, %d tokens, multiplier %.4f\n", rep.LengthSec, rep.Tokens, rep.Multiplier)
	fmt.Printf("  single %.4fs  arpeggio key %.4fs  short %.4fs  pause %.4fs  long %.4fs\n",
		rep.Durations.Single, rep.Durations.ArpeggioKey,
		rep.Durations.ShortPause, rep.Durations.Pause, rep.Durations.LongPause)
	fmt.Printf("  estimated play time %.1fs\n", rep.EstimateSec)
}
