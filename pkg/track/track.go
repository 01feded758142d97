// Package track defines the track piece alphabet and the layout sequences
// built from it.
//
// A layout is an ordered sequence of three piece kinds: right-turn arcs,
// left-turn arcs, and straight segments. Sequences are immutable strings over
// the symbols 'R', 'L', and 'S', which keeps them directly usable as map keys
// and makes rotation and substring checks cheap.
//
// The package also provides the canonical-rotation utility used to collapse
// rotation-equivalent layouts into a single representative (see
// [CanonicalRotation] and [UniqueCyclic]).
package track

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPiece is returned by [Parse] when a sequence contains a symbol
// outside the R/L/S alphabet.
var ErrInvalidPiece = errors.New("invalid piece symbol")

// Piece is one atomic track element.
type Piece byte

const (
	// Right is a right-turn arc (orientation decreases by one turn unit).
	Right Piece = 'R'
	// Left is a left-turn arc (orientation increases by one turn unit).
	Left Piece = 'L'
	// Straight is a straight segment.
	Straight Piece = 'S'
)

// Pieces lists all piece kinds in the fixed order the search uses when
// extending candidate layouts.
var Pieces = [...]Piece{Right, Left, Straight}

// Valid reports whether p is one of the three known piece kinds.
func (p Piece) Valid() bool {
	return p == Right || p == Left || p == Straight
}

// String returns the single-symbol representation of the piece.
func (p Piece) String() string { return string(rune(p)) }

// Sequence is an ordered, immutable layout: a string over the R/L/S alphabet.
// The zero value is the empty layout.
type Sequence string

// Parse validates that s contains only R/L/S symbols and returns it as a
// Sequence. The empty string parses to the empty Sequence.
func Parse(s string) (Sequence, error) {
	for i := 0; i < len(s); i++ {
		if !Piece(s[i]).Valid() {
			return "", fmt.Errorf("%w: %q at position %d", ErrInvalidPiece, s[i], i)
		}
	}
	return Sequence(s), nil
}

// Count returns the number of occurrences of p in the sequence.
func (s Sequence) Count(p Piece) int {
	return strings.Count(string(s), p.String())
}

// Append returns a new sequence with p appended. The receiver is unchanged.
func (s Sequence) Append(p Piece) Sequence {
	return s + Sequence(p)
}

// Contains reports whether sub occurs anywhere in s.
func (s Sequence) Contains(sub Sequence) bool {
	return strings.Contains(string(s), string(sub))
}

// HasPrefix reports whether s begins with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return strings.HasPrefix(string(s), string(prefix))
}

// Run returns n repetitions of p, e.g. Run(Straight, 3) == "SSS".
// For n <= 0 it returns the empty sequence.
func Run(p Piece, n int) Sequence {
	if n <= 0 {
		return ""
	}
	return Sequence(strings.Repeat(p.String(), n))
}

// String returns the raw symbol string.
func (s Sequence) String() string { return string(s) }
