// Package notation parses vpiano sheet text into a playable token sequence.
//
// A sheet is line-oriented. Lines starting with '#' declare metadata
// ("#length 1:30", "#title ...", "#writer ..."). Blank lines rest for a
// beat; a run of consecutive blank lines counts once. On content lines,
// '[' and ']' group keys into a chord, a space inside a group turns the
// chord into an arpeggio, '|' is a standalone pause, a space outside a
// group is a short pause, and every other character is a key.
package notation

// Key identifies a single keyboard symbol. Sheets address keys by the
// character that produces them; no validation is applied here, the
// injector decides what it can actually press.
type Key rune

// KeyOf builds a Key from a sheet character.
func KeyOf(r rune) Key { return Key(r) }

// Token is one playback unit: a pause category or a key-press shape.
// The set of implementations is closed.
type Token interface {
	isToken()
}

// ShortPause is emitted for a space outside a key group.
type ShortPause struct{}

// Pause is emitted for the standalone pause marker '|'.
type Pause struct{}

// BlankRest is emitted once per run of blank lines. Its duration is not
// allocated by the timing package; players supply it separately.
type BlankRest struct{}

// SinglePress is one key pressed and released as one timed unit.
type SinglePress struct {
	Key Key
}

// Chord is a group of keys pressed together, held for one timed unit,
// and released together. The key slice is owned by the token.
type Chord struct {
	Keys []Key
}

// Arpeggio is a group of keys pressed and released one at a time, each
// occupying its own timed unit. The key slice is owned by the token.
type Arpeggio struct {
	Keys []Key
}

func (ShortPause) isToken()  {}
func (Pause) isToken()       {}
func (BlankRest) isToken()   {}
func (SinglePress) isToken() {}
func (Chord) isToken()       {}
func (Arpeggio) isToken()    {}

// Header holds sheet metadata. Title and Writer are empty when the sheet
// does not declare them; Length is the declared duration in seconds.
type Header struct {
	Title  string
	Writer string
	Length float64
}

// Sheet is a parsed piece: metadata plus the ordered token sequence.
// It is immutable once parsed; playback only reads it.
type Sheet struct {
	Header Header
	Tokens []Token
}

// TokenCount returns the number of playback units in the sheet.
func (s *Sheet) TokenCount() int { return len(s.Tokens) }

// Multiplier returns the average real-time budget per token in seconds,
// the value the timing allocator splits across token categories.
// It returns 0 for an empty sheet.
func (s *Sheet) Multiplier() float64 {
	if len(s.Tokens) == 0 {
		return 0
	}
	return s.Header.Length / float64(len(s.Tokens))
}
