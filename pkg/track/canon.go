package track

import "slices"

// CanonicalRotation returns the lexicographically smallest sequence among all
// cyclic rotations of s. Two layouts describe the same physical track started
// at a different piece exactly when their canonical rotations are equal.
//
// The comparison of all n rotations is quadratic in the sequence length,
// which is fine for track-sized inputs (tens of pieces).
func CanonicalRotation(s Sequence) Sequence {
	best := s
	for i := 1; i < len(s); i++ {
		if r := s[i:] + s[:i]; r < best {
			best = r
		}
	}
	return best
}

// UniqueCyclic maps seqs to the sorted set of their canonical rotations,
// collapsing rotation-equivalent layouts to one representative each.
func UniqueCyclic(seqs []Sequence) []Sequence {
	set := make(map[Sequence]struct{}, len(seqs))
	for _, s := range seqs {
		set[CanonicalRotation(s)] = struct{}{}
	}
	out := make([]Sequence, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
