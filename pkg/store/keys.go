package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ResultKeyOpts captures every search parameter that influences the result
// set. Two runs share a store entry only when all fields match.
type ResultKeyOpts struct {
	Turns                int     `json:"turns"`
	Straights            int     `json:"straights"`
	StartSequence        string  `json:"start_sequence"`
	TurnRadius           float64 `json:"turn_radius"`
	StraightLength       float64 `json:"straight_length"`
	LapTolerance         float64 `json:"lap_tolerance"`
	OrientationTolerance float64 `json:"orientation_tolerance"`
	MinSeparation        float64 `json:"min_separation"`
	AllowIntersections   bool    `json:"allow_intersections"`
	MaxTracksPerSplit    int     `json:"max_tracks_per_split"`
	MaxTimePerSplitSec   float64 `json:"max_time_per_split_sec"`
}

// ResultKey derives the store key for a search result.
func ResultKey(o ResultKeyOpts) string {
	return hashKey("result", o)
}

// hashKey generates a key of the form prefix:sha256(parts).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes the SHA-256 hex digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
