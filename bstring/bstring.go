// Package bstring implements an owning/borrowed byte buffer with the
// unsigned-byte total order the automaton is built and queried against:
// lexicographic, except that when one string is a strict prefix of the
// other the longer one compares less. The builder's correctness
// argument depends on this order, so it is preserved unchanged
// throughout the rest of the module.
package bstring

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by FromText when the caller's text source
// does not decode as valid UTF-8.
var ErrInvalidUTF8 = errors.New("bstring: input is not valid UTF-8")

// ErrIndexOutOfBounds is returned by At when the index is outside
// [0, Len()). Per spec this is a contract violation rather than a
// recoverable error, so callers that hit it have a bug.
var ErrIndexOutOfBounds = errors.New("bstring: index out of bounds")

// BString is an immutable view over a byte slice. Multiple BStrings may
// share the same backing array (see Slice), so callers must not mutate
// the slice passed to New.
type BString struct {
	b     []byte
	start int
	end   int
}

// New wraps raw bytes as a BString. The slice is not copied; the caller
// must not mutate it afterwards.
func New(b []byte) BString {
	return BString{b: b, start: 0, end: len(b)}
}

// FromString converts a Go string (already UTF-8, Go's native encoding)
// into a BString over its octets.
func FromString(s string) BString {
	return New([]byte(s))
}

// FromText validates s as UTF-8 before wrapping it, rejecting encoding
// errors at the boundary. Go strings are not guaranteed to be valid
// UTF-8, so this is not a redundant check.
func FromText(s string) (BString, error) {
	if !utf8.ValidString(s) {
		return BString{}, ErrInvalidUTF8
	}
	return FromString(s), nil
}

// Len returns the length of the byte string in bytes.
func (s BString) Len() int {
	return s.end - s.start
}

// At returns the byte at index i, bounds-checked.
func (s BString) At(i int) (byte, error) {
	if i < 0 || i >= s.Len() {
		return 0, ErrIndexOutOfBounds
	}
	return s.b[s.start+i], nil
}

// Bytes returns the string's octets as a slice. The slice aliases the
// BString's backing array and must not be mutated.
func (s BString) Bytes() []byte {
	return s.b[s.start:s.end]
}

// Slice returns the substring [i, j) as a BString sharing the same
// backing array. It does not need to respect UTF-8 character
// boundaries.
func (s BString) Slice(i, j int) BString {
	return BString{b: s.b, start: s.start + i, end: s.start + j}
}

// String converts the byte string back to a Go string, along with
// whether the bytes form valid UTF-8. When ok is false the returned
// string is a best-effort conversion and should not be trusted as text.
func (s BString) String() (text string, ok bool) {
	b := s.Bytes()
	return string(b), utf8.Valid(b)
}

// Compare implements the §3 total order: unsigned byte-wise
// lexicographic, with the longer of two strings in a prefix
// relationship comparing less. It returns -1, 0 or 1.
func Compare(a, b BString) int {
	la, lb := a.Len(), b.Len()
	n := la
	if lb < n {
		n = lb
	}
	for i := 0; i < n; i++ {
		ca := a.b[a.start+i]
		cb := b.b[b.start+i]
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	if la == lb {
		return 0
	}
	// One is a strict prefix of the other: the longer compares less.
	if la > lb {
		return -1
	}
	return 1
}

// Less reports whether a strictly precedes b under Compare's order.
func Less(a, b BString) bool {
	return Compare(a, b) < 0
}
