// vpiano - Sheet player for keyboard-character music notation
//
// vpiano reads sheet files written in a small line-oriented notation,
// splits each sheet's declared length across its tokens, and plays the
// result by injecting timed key events into the active window.
//
//	vpiano                  Interactive song menu
//	vpiano -play <file>     Play a single sheet file and exit
//	vpiano -list            List the library and exit
package main

import (
	"flag"
	"fmt"
	"os"

	"vpiano/internal/config"
	"vpiano/internal/history"
	"vpiano/internal/library"
	"vpiano/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default: platform config dir)")
		sheetsDir   = flag.String("sheets", "", "override the sheet library directory")
		playPath    = flag.String("play", "", "play a single sheet file and exit")
		listOnly    = flag.Bool("list", false, "list the library and exit")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("vpiano", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if *sheetsDir != "" {
		cfg.Library.Dir = *sheetsDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Level and format strings were checked by Validate above.
	level, _ := logging.ParseLevel(cfg.Logging.Level)
	format, _ := logging.ParseFormat(cfg.Logging.Format)
	log, err := logging.New(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		Component: "vpiano",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error setting up logging:", err)
		os.Exit(1)
	}
	defer log.Close()
	logging.SetDefault(log)

	// Single-file mode skips the library entirely.
	if *playPath != "" {
		if err := playFile(*playPath, cfg, log); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	lib, err := library.Open(cfg.Library.Dir, log.WithComponent("library"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening sheet library:", err)
		fmt.Fprintf(os.Stderr, "Put sheet files in %s or point me elsewhere with -sheets.\n", cfg.Library.Dir)
		os.Exit(1)
	}
	if cfg.Library.Watch {
		if err := lib.Watch(); err != nil {
			log.Warn("library watch unavailable", "error", err)
		}
		defer lib.Stop()
	}

	if *listOnly {
		for _, entry := range lib.Entries() {
			fmt.Printf("%s by %s (%.0fs, %d tokens)\n",
				entry.Title(), entry.Writer(), entry.Sheet.Header.Length, entry.Sheet.TokenCount())
		}
		return
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Warn("play history unavailable", "error", err, "path", cfg.History.Path)
		} else {
			defer store.Close()
		}
	}

	menu := NewMenu(cfg, lib, store, log)
	menu.Run()
}
