package search

import (
	"fmt"

	"github.com/slotforge/slotforge/pkg/track"
)

// SplitSpec fixes the piece composition explored by one independent
// sub-search: how many right turns, left turns, and straights a layout must
// use in total.
type SplitSpec struct {
	Right     int
	Left      int
	Straights int
}

// Splits enumerates the splits of turns into right/left counts, paired with
// the full straight count. Right ranges over [⌈turns/2⌉, turns]: a layout
// with more left than right turns is the mirror image of one with the counts
// swapped, so only one representative per unordered split is searched.
func Splits(turns, straights int) []SplitSpec {
	specs := make([]SplitSpec, 0, turns/2+1)
	for right := (turns + 1) / 2; right <= turns; right++ {
		specs = append(specs, SplitSpec{Right: right, Left: turns - right, Straights: straights})
	}
	return specs
}

// Count returns the split's budget for the given piece kind.
func (s SplitSpec) Count(p track.Piece) int {
	switch p {
	case track.Right:
		return s.Right
	case track.Left:
		return s.Left
	case track.Straight:
		return s.Straights
	}
	return 0
}

// Total returns the layout length this split produces.
func (s SplitSpec) Total() int { return s.Right + s.Left + s.Straights }

// String returns a compact label like "R4/L2/S6".
func (s SplitSpec) String() string {
	return fmt.Sprintf("R%d/L%d/S%d", s.Right, s.Left, s.Straights)
}
