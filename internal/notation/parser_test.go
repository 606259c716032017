package notation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withLength prefixes content lines with a length define so the header
// resolves and the interesting tokens start at index 0.
func withLength(content string) string {
	return "#length 1:30\n" + content
}

func TestParse_SingleKeys(t *testing.T) {
	sheet, err := Parse(withLength("abc"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 3)
	assert.Equal(t, SinglePress{Key: KeyOf('a')}, sheet.Tokens[0])
	assert.Equal(t, SinglePress{Key: KeyOf('b')}, sheet.Tokens[1])
	assert.Equal(t, SinglePress{Key: KeyOf('c')}, sheet.Tokens[2])
}

func TestParse_Chord(t *testing.T) {
	sheet, err := Parse(withLength("[AB]"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 1)
	assert.Equal(t, Chord{Keys: []Key{KeyOf('A'), KeyOf('B')}}, sheet.Tokens[0])
}

func TestParse_Arpeggio(t *testing.T) {
	sheet, err := Parse(withLength("[A B]"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 1)
	assert.Equal(t, Arpeggio{Keys: []Key{KeyOf('A'), KeyOf('B')}}, sheet.Tokens[0])
}

func TestParse_SpaceEarlyInGroupStillArpeggio(t *testing.T) {
	// Once a space is seen inside a group, the group stays fast for the
	// rest of the line even though more keys follow without spaces.
	sheet, err := Parse(withLength("[A Bc]"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 1)
	assert.Equal(t, Arpeggio{Keys: []Key{KeyOf('A'), KeyOf('B'), KeyOf('c')}}, sheet.Tokens[0])
}

func TestParse_PauseBetweenKeys(t *testing.T) {
	sheet, err := Parse(withLength("A|B"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 3)
	assert.Equal(t, SinglePress{Key: KeyOf('A')}, sheet.Tokens[0])
	assert.Equal(t, Pause{}, sheet.Tokens[1])
	assert.Equal(t, SinglePress{Key: KeyOf('B')}, sheet.Tokens[2])
}

func TestParse_PauseInsideGroup(t *testing.T) {
	// '|' ignores group state entirely: it is emitted immediately and the
	// group keeps collecting keys.
	sheet, err := Parse(withLength("[A|B]"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 2)
	assert.Equal(t, Pause{}, sheet.Tokens[0])
	assert.Equal(t, Chord{Keys: []Key{KeyOf('A'), KeyOf('B')}}, sheet.Tokens[1])
}

func TestParse_SpaceOutsideGroupIsShortPause(t *testing.T) {
	sheet, err := Parse(withLength("a b"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 3)
	assert.Equal(t, ShortPause{}, sheet.Tokens[1])
}

func TestParse_BlankLineRunsCollapse(t *testing.T) {
	for _, k := range []int{1, 2, 5} {
		input := "#length 0:10\na" + strings.Repeat("\n", k+1) + "b"
		sheet, err := Parse(input)
		require.NoError(t, err, "k=%d", k)

		rests := 0
		for _, tok := range sheet.Tokens {
			if _, ok := tok.(BlankRest); ok {
				rests++
			}
		}
		assert.Equal(t, 1, rests, "k=%d blank lines must rest exactly once", k)
		require.Len(t, sheet.Tokens, 3, "k=%d", k)
		assert.Equal(t, BlankRest{}, sheet.Tokens[1])
	}
}

func TestParse_SeparatedBlankRunsRestSeparately(t *testing.T) {
	sheet, err := Parse("#length 0:10\na\n\nb\n\nc")
	require.NoError(t, err)

	rests := 0
	for _, tok := range sheet.Tokens {
		if _, ok := tok.(BlankRest); ok {
			rests++
		}
	}
	assert.Equal(t, 2, rests)
}

func TestParse_Deterministic(t *testing.T) {
	input := "#title Song\n#writer Someone\n#length 2:05\nab [cd] [e f]\n\ng|h"

	first, err := Parse(input)
	require.NoError(t, err)
	second, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, first.Header, second.Header)
	assert.Equal(t, first.Tokens, second.Tokens)
}

func TestParse_Header(t *testing.T) {
	sheet, err := Parse("#title My Song\n#writer Me\n#length 1:30\na")
	require.NoError(t, err)

	assert.Equal(t, "My Song", sheet.Header.Title)
	assert.Equal(t, "Me", sheet.Header.Writer)
	assert.Equal(t, 90.0, sheet.Header.Length)
}

func TestParse_HeaderOptionalFieldsEmpty(t *testing.T) {
	sheet, err := Parse("#length 0:45.5\na")
	require.NoError(t, err)

	assert.Empty(t, sheet.Header.Title)
	assert.Empty(t, sheet.Header.Writer)
	assert.Equal(t, 45.5, sheet.Header.Length)
}

func TestParse_LastDefineWins(t *testing.T) {
	sheet, err := Parse("#title First\n#title Second\n#length 1:00\na")
	require.NoError(t, err)
	assert.Equal(t, "Second", sheet.Header.Title)
}

func TestParse_CRLF(t *testing.T) {
	sheet, err := Parse("#length 1:00\r\nab\r\n")
	require.NoError(t, err)
	require.Len(t, sheet.Tokens, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"close without open", withLength("a]b"), ErrCloseWithoutOpen},
		{"close after closed group", withLength("[ab]]"), ErrCloseWithoutOpen},
		{"empty group", withLength("[]"), ErrCloseMissingPayload},
		{"define without value", "#length\na", ErrMalformedDefine},
		{"missing length", "#title Song\nabc", ErrMissingLength},
		{"length without colon", "#length 90\na", ErrBadLengthFormat},
		{"length bad minutes", "#length x:30\na", ErrBadLengthFormat},
		{"length bad seconds", "#length 1:y\na", ErrBadLengthFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Parse(tt.input)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, sheet, "no partial sheet on failure")
		})
	}
}

func TestParse_ReopenDiscardsUnclosedGroup(t *testing.T) {
	// A '[' inside an open group throws away what was collected so far
	// and starts over.
	sheet, err := Parse(withLength("[ab[cd]"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 1)
	assert.Equal(t, Chord{Keys: []Key{KeyOf('c'), KeyOf('d')}}, sheet.Tokens[0])
}

func TestParse_UnclosedGroupDiscardedAtLineEnd(t *testing.T) {
	sheet, err := Parse(withLength("[ab\ncd"))
	require.NoError(t, err)

	require.Len(t, sheet.Tokens, 2)
	assert.Equal(t, SinglePress{Key: KeyOf('c')}, sheet.Tokens[0])
}

func TestSheet_Multiplier(t *testing.T) {
	sheet, err := Parse("#length 0:10\nabcde")
	require.NoError(t, err)

	assert.Equal(t, 5, sheet.TokenCount())
	assert.InDelta(t, 2.0, sheet.Multiplier(), 1e-12)

	empty := &Sheet{}
	assert.Zero(t, empty.Multiplier())
}
