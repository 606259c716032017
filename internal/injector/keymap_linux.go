//go:build linux

package injector

import "vpiano/internal/notation"

// Linux input event key codes (input-event-codes.h), limited to the
// symbols sheet notation can reasonably address.
const (
	keyLeftShift = 42

	key1 = 2
	key2 = 3
	key3 = 4
	key4 = 5
	key5 = 6
	key6 = 7
	key7 = 8
	key8 = 9
	key9 = 10
	key0 = 11

	keyQ = 16
	keyW = 17
	keyE = 18
	keyR = 19
	keyT = 20
	keyY = 21
	keyU = 22
	keyI = 23
	keyO = 24
	keyP = 25

	keyA = 30
	keyS = 31
	keyD = 32
	keyF = 33
	keyG = 34
	keyH = 35
	keyJ = 36
	keyK = 37
	keyL = 38

	keyZ = 44
	keyX = 45
	keyC = 46
	keyV = 47
	keyB = 48
	keyN = 49
	keyM = 50

	keyMinus      = 12
	keyEqual      = 13
	keyLeftBrace  = 26
	keyRightBrace = 27
	keySemicolon  = 39
	keyApostrophe = 40
	keyGrave      = 41
	keyBackslash  = 43
	keyComma      = 51
	keyDot        = 52
	keySlash      = 53
)

// stroke is the event sequence for one sheet character: a key code plus
// whether shift is held around it.
type stroke struct {
	code  uint16
	shift bool
}

var plainStrokes = map[rune]uint16{
	'a': keyA, 'b': keyB, 'c': keyC, 'd': keyD, 'e': keyE, 'f': keyF,
	'g': keyG, 'h': keyH, 'i': keyI, 'j': keyJ, 'k': keyK, 'l': keyL,
	'm': keyM, 'n': keyN, 'o': keyO, 'p': keyP, 'q': keyQ, 'r': keyR,
	's': keyS, 't': keyT, 'u': keyU, 'v': keyV, 'w': keyW, 'x': keyX,
	'y': keyY, 'z': keyZ,

	'1': key1, '2': key2, '3': key3, '4': key4, '5': key5,
	'6': key6, '7': key7, '8': key8, '9': key9, '0': key0,

	'-': keyMinus, '=': keyEqual, '[': keyLeftBrace, ']': keyRightBrace,
	';': keySemicolon, '\'': keyApostrophe, '`': keyGrave,
	'\\': keyBackslash, ',': keyComma, '.': keyDot, '/': keySlash,
}

var shiftedStrokes = map[rune]uint16{
	'!': key1, '@': key2, '#': key3, '$': key4, '%': key5,
	'^': key6, '&': key7, '*': key8, '(': key9, ')': key0,

	'_': keyMinus, '+': keyEqual, '{': keyLeftBrace, '}': keyRightBrace,
	':': keySemicolon, '"': keyApostrophe, '~': keyGrave,
	'|': keyBackslash, '<': keyComma, '>': keyDot, '?': keySlash,
}

// strokeFor maps a sheet key to a keyboard stroke. Uppercase letters are
// shift plus the lowercase code. The second return is false for symbols
// this keyboard cannot produce; the injector skips those silently, in
// line with the best-effort injection policy.
func strokeFor(k notation.Key) (stroke, bool) {
	r := rune(k)
	if r >= 'A' && r <= 'Z' {
		code, ok := plainStrokes[r+('a'-'A')]
		return stroke{code: code, shift: true}, ok
	}
	if code, ok := plainStrokes[r]; ok {
		return stroke{code: code}, true
	}
	if code, ok := shiftedStrokes[r]; ok {
		return stroke{code: code, shift: true}, true
	}
	return stroke{}, false
}

// supportedCodes returns every key code the virtual device must register,
// shift included.
func supportedCodes() []uint16 {
	seen := make(map[uint16]bool)
	codes := []uint16{keyLeftShift}
	seen[keyLeftShift] = true
	for _, c := range plainStrokes {
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}
	return codes
}
