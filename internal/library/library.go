// Package library manages the collection of sheet files on disk.
//
// Every file in the sheet directory is parsed independently; a malformed
// sheet is logged and skipped so one broken file never hides the rest of
// the collection. An optional watcher rescans the directory when sheet
// files change.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"vpiano/internal/logging"
	"vpiano/internal/notation"
)

// Entry is one successfully parsed sheet and where it came from.
type Entry struct {
	Path  string
	Sheet *notation.Sheet
}

// Title returns the sheet title, falling back to the file name without
// its extension.
func (e Entry) Title() string {
	if t := e.Sheet.Header.Title; t != "" {
		return t
	}
	base := filepath.Base(e.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Writer returns the sheet writer, or "Unknown" when absent.
func (e Entry) Writer() string {
	if w := e.Sheet.Header.Writer; w != "" {
		return w
	}
	return "Unknown"
}

// Library holds the parsed sheets of one directory.
type Library struct {
	dir string
	log *logging.Logger

	mu      sync.RWMutex
	entries []Entry

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// Open scans dir and returns the library. The directory must exist; an
// empty directory is not an error.
func Open(dir string, log *logging.Logger) (*Library, error) {
	if log == nil {
		log = logging.Default().WithComponent("library")
	}
	l := &Library{dir: dir, log: log}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Dir returns the sheet directory.
func (l *Library) Dir() string { return l.dir }

// Entries returns the current sheets sorted by title. The slice is a
// copy; callers may keep it across reloads.
func (l *Library) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of loaded sheets.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Reload rescans the sheet directory. Sheets that fail to parse are
// skipped with a warning.
func (l *Library) Reload() error {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("read sheet directory: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(l.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			l.log.Warn("skipping unreadable sheet", "path", path, "error", err)
			continue
		}
		sheet, err := notation.Parse(string(data))
		if err != nil {
			l.log.Warn("skipping malformed sheet", "path", path, "error", err)
			continue
		}
		entries = append(entries, Entry{Path: path, Sheet: sheet})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Title() < entries[j].Title()
	})

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	l.log.Debug("library loaded", "dir", l.dir, "sheets", len(entries))
	return nil
}

// Watch starts reloading the library whenever files in the sheet
// directory are created, written, renamed, or removed. Call Stop to shut
// the watcher down.
func (l *Library) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(l.dir); err != nil {
		w.Close()
		return err
	}

	l.watcher = w
	l.done = make(chan struct{})
	l.wg.Add(1)
	go l.watchLoop()
	return nil
}

// Stop shuts down the watcher started by Watch.
func (l *Library) Stop() error {
	if l.watcher == nil {
		return nil
	}
	close(l.done)
	l.wg.Wait()
	err := l.watcher.Close()
	l.watcher = nil
	return err
}

func (l *Library) watchLoop() {
	defer l.wg.Done()

	for {
		select {
		case <-l.done:
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if err := l.Reload(); err != nil {
				l.log.Warn("reload after change failed", "error", err)
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.log.Warn("sheet watcher error", "error", err)
		}
	}
}
