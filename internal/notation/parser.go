package notation

import (
	"fmt"
	"strconv"
	"strings"
)

// Grammar markers.
const (
	defineMarker = '#'
	groupOpen    = '['
	groupClose   = ']'
	pauseMarker  = '|'
)

// Parse converts sheet text into a Sheet. The whole input is consumed
// before the header is resolved, so a missing or malformed '#length'
// define is reported even when every content line is valid. Parsing is
// deterministic and keeps no state between calls.
func Parse(text string) (*Sheet, error) {
	var tokens []Token
	defines := make(map[string]string)

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// A trailing newline terminates the last line, it does not start
		// a blank one.
		lines = lines[:n-1]
	}

	lastLineBlank := false
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		// A run of blank lines rests once, however long it is.
		if line == "" {
			if !lastLineBlank {
				tokens = append(tokens, BlankRest{})
			}
			lastLineBlank = true
			continue
		}
		lastLineBlank = false

		if line[0] == defineMarker {
			name, value, ok := strings.Cut(line[1:], " ")
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrMalformedDefine, line)
			}
			// Last occurrence wins; re-declaring is not an error.
			defines[name] = value
			continue
		}

		var err error
		tokens, err = scanLine(tokens, line)
		if err != nil {
			return nil, err
		}
	}

	header, err := buildHeader(defines)
	if err != nil {
		return nil, err
	}

	return &Sheet{Header: header, Tokens: tokens}, nil
}

// scanLine tokenizes one content line, appending to tokens. Group state
// is per line: an unclosed group is discarded when the line ends.
func scanLine(tokens []Token, line string) ([]Token, error) {
	inGroup := false
	inFastGroup := false
	var pending []Key

	for _, r := range line {
		switch r {
		case groupOpen:
			// Re-opening inside a group discards the unclosed one and
			// starts fresh.
			inGroup = true
			inFastGroup = false
			pending = []Key{}

		case groupClose:
			if !inGroup {
				return nil, ErrCloseWithoutOpen
			}
			if len(pending) == 0 {
				return nil, ErrCloseMissingPayload
			}
			if inFastGroup {
				tokens = append(tokens, Arpeggio{Keys: pending})
			} else {
				tokens = append(tokens, Chord{Keys: pending})
			}
			inGroup = false
			inFastGroup = false
			pending = nil

		case pauseMarker:
			// Pauses do not interact with group tracking.
			tokens = append(tokens, Pause{})

		case ' ':
			if inGroup {
				// The rest of this group plays as an arpeggio.
				inFastGroup = true
			} else {
				tokens = append(tokens, ShortPause{})
			}

		default:
			if inGroup {
				pending = append(pending, KeyOf(r))
			} else {
				tokens = append(tokens, SinglePress{Key: KeyOf(r)})
			}
		}
	}

	return tokens, nil
}

// buildHeader resolves the required '#length' define and the optional
// '#title' and '#writer' defines.
func buildHeader(defines map[string]string) (Header, error) {
	raw, ok := defines["length"]
	if !ok {
		return Header{}, ErrMissingLength
	}

	mins, secs, ok := strings.Cut(raw, ":")
	if !ok {
		return Header{}, fmt.Errorf("%w: %q is not minutes:seconds", ErrBadLengthFormat, raw)
	}
	m, err := strconv.ParseFloat(mins, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: minutes %q is not a number", ErrBadLengthFormat, mins)
	}
	s, err := strconv.ParseFloat(secs, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: seconds %q is not a number", ErrBadLengthFormat, secs)
	}

	return Header{
		Title:  defines["title"],
		Writer: defines["writer"],
		Length: m*60 + s,
	}, nil
}
