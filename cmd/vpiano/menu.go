package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"vpiano/internal/config"
	"vpiano/internal/history"
	"vpiano/internal/library"
	"vpiano/internal/logging"
)

// Menu colors and formatting (ANSI escape codes)
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorRed    = "\033[31m"
)

// Menu is the interactive song picker.
type Menu struct {
	reader *bufio.Reader
	cfg    *config.Config
	lib    *library.Library
	store  *history.Store
	log    *logging.Logger
}

// NewMenu creates the interactive menu.
func NewMenu(cfg *config.Config, lib *library.Library, store *history.Store, log *logging.Logger) *Menu {
	return &Menu{
		reader: bufio.NewReader(os.Stdin),
		cfg:    cfg,
		lib:    lib,
		store:  store,
		log:    log,
	}
}

// Run starts the interactive menu loop.
func (m *Menu) Run() {
	for {
		m.printHeader()
		entries := m.lib.Entries()
		m.printSongs(entries)
		m.printOptions()

		choice := strings.ToLower(m.prompt("Select a song"))

		switch choice {
		case "q", "quit", "exit", "0":
			fmt.Println(colorDim + " Bye." + colorReset)
			return
		case "r", "rescan":
			if err := m.lib.Reload(); err != nil {
				m.printError("Rescan failed: " + err.Error())
			}
		case "h", "history":
			m.showHistory()
		case "":
			// Just redraw.
		default:
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(entries) {
				m.printError("Invalid option.")
				m.waitForEnter()
				continue
			}
			m.play(entries[n-1])
		}
	}
}

func (m *Menu) printHeader() {
	fmt.Println()
	fmt.Println(colorCyan + colorBold + " vpiano" + colorReset + colorDim + " " + version + colorReset)
	fmt.Println(colorDim + " Library: " + m.lib.Dir() + colorReset)
	fmt.Println()
}

func (m *Menu) printSongs(entries []library.Entry) {
	if len(entries) == 0 {
		fmt.Println(colorYellow + " No sheets found. Drop sheet files into the library directory." + colorReset)
		return
	}
	for i, entry := range entries {
		fmt.Printf(" %s%2d)%s %q by %s %s(%s, %s)%s\n",
			colorGreen, i+1, colorReset,
			entry.Title(), entry.Writer(),
			colorDim, formatLength(entry.Sheet.Header.Length),
			describeSheet(entry.Sheet), colorReset)
	}
}

func (m *Menu) printOptions() {
	fmt.Println()
	fmt.Println(colorDim + " r) rescan library   h) play history   q) quit" + colorReset)
}

func (m *Menu) play(entry library.Entry) {
	if err := playEntry(entry, m.cfg, m.store, m.log); err != nil {
		m.printError(err.Error())
	}
	m.waitForEnter()
}

func (m *Menu) showHistory() {
	if m.store == nil {
		m.printError("Play history is disabled.")
		m.waitForEnter()
		return
	}
	plays, err := m.store.Recent(15)
	if err != nil {
		m.printError("Failed to load history: " + err.Error())
		m.waitForEnter()
		return
	}
	fmt.Println()
	if len(plays) == 0 {
		fmt.Println(colorDim + " Nothing played yet." + colorReset)
	}
	for _, p := range plays {
		fmt.Printf(" %s%s%s  %q by %s (%s)\n",
			colorDim, p.PlayedAt.Local().Format("2006-01-02 15:04"), colorReset,
			p.Title, p.Writer, formatLength(p.Length))
	}
	if total, err := m.store.PlayCount(); err == nil {
		fmt.Printf("\n %s%d plays recorded in total.%s\n", colorDim, total, colorReset)
	}
	m.waitForEnter()
}

func (m *Menu) prompt(label string) string {
	fmt.Print(colorCyan + " " + label + ": " + colorReset)
	input, _ := m.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func (m *Menu) waitForEnter() {
	fmt.Print(colorDim + " Press Enter to continue..." + colorReset)
	m.reader.ReadString('\n')
}

func (m *Menu) printError(message string) {
	fmt.Println()
	fmt.Println(colorRed + " ✗ " + message + colorReset)
	fmt.Println()
}
