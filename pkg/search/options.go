// Package search implements the backtracking enumeration of closed-loop
// track layouts.
//
// A search is described by [Options]: the piece counts, the geometry scale,
// the closure tolerances, and the pruning budgets. [Engine.Run] partitions
// the turn count into independent [SplitSpec] sub-problems, explores each
// split depth-first with per-branch budget copies, and merges every accepted
// layout into a [registry.Registry].
//
// The search is exhaustive only within its budgets: each split stops after
// Options.MaxTracksPerSplit accepted layouts or Options.MaxTimePerSplit of
// wall-clock time, whichever comes first. Splits are independent and run
// concurrently on up to Options.Workers goroutines.
package search

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slotforge/slotforge/pkg/registry"
	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

// Default geometry and budget values. Geometry defaults match the Carrera
// 1:43 piece catalog: 0.3 m turn radius and 0.345 m straights.
const (
	DefaultTurnRadius           = 0.3
	DefaultStraightLength       = 0.345
	DefaultLapTolerance         = 0.05
	DefaultOrientationTolerance = 0.01
	DefaultMaxTracksPerSplit    = 10
	DefaultMaxTimePerSplit      = 10 * time.Second

	// DefaultMinSeparationFactor scales the straight length into the default
	// minimum clearance between any two trace points.
	DefaultMinSeparationFactor = 0.6
)

// Options contains all configuration for a layout search.
// The zero value plus Turns/Straights is usable after ValidateAndSetDefaults.
type Options struct {
	// Turns is the total number of turn pieces (right plus left).
	Turns int
	// Straights is the total number of straight pieces.
	Straights int
	// StartSequence is a required layout prefix. Splits whose budget cannot
	// cover the prefix yield empty results rather than errors.
	StartSequence track.Sequence

	// TurnRadius and StraightLength define the geometry scale in meters.
	TurnRadius     float64
	StraightLength float64

	// LapTolerance is the maximum distance from the final position to the
	// origin for a layout to count as closed.
	LapTolerance float64
	// OrientationTolerance is the maximum angular distance of the final
	// heading from a whole number of turns.
	OrientationTolerance float64

	// MinSeparation is the minimum clearance between any two trace points.
	// Zero means DefaultMinSeparationFactor × StraightLength.
	MinSeparation float64
	// AllowIntersections disables both the self-intersection and the
	// clearance check: any closed layout is accepted.
	AllowIntersections bool

	// MaxTracksPerSplit caps the number of accepted layouts per split.
	MaxTracksPerSplit int
	// MaxTimePerSplit is the wall-clock budget for a single split's search.
	MaxTimePerSplit time.Duration
	// Workers bounds the number of splits searched concurrently.
	// Zero means runtime.NumCPU().
	Workers int

	// Logger receives per-split progress. Nil discards.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks option values and fills in defaults.
// It is idempotent and must succeed before the options reach the engine;
// the search body assumes validated inputs.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Turns < 0 {
		return fmt.Errorf("turns must be >= 0, got %d", o.Turns)
	}
	if o.Straights < 0 {
		return fmt.Errorf("straights must be >= 0, got %d", o.Straights)
	}
	if _, err := track.Parse(string(o.StartSequence)); err != nil {
		return fmt.Errorf("start sequence: %w", err)
	}

	if o.TurnRadius == 0 {
		o.TurnRadius = DefaultTurnRadius
	}
	if o.StraightLength == 0 {
		o.StraightLength = DefaultStraightLength
	}
	if o.TurnRadius < 0 || o.StraightLength < 0 {
		return fmt.Errorf("geometry lengths must be positive (radius %g, straight %g)", o.TurnRadius, o.StraightLength)
	}

	if o.LapTolerance == 0 {
		o.LapTolerance = DefaultLapTolerance
	}
	if o.OrientationTolerance == 0 {
		o.OrientationTolerance = DefaultOrientationTolerance
	}
	if o.LapTolerance < 0 || o.OrientationTolerance < 0 {
		return fmt.Errorf("tolerances must be positive (lap %g, orientation %g)", o.LapTolerance, o.OrientationTolerance)
	}

	if o.MinSeparation == 0 {
		o.MinSeparation = DefaultMinSeparationFactor * o.StraightLength
	}
	if o.MinSeparation < 0 {
		return fmt.Errorf("minimum separation must be positive, got %g", o.MinSeparation)
	}

	if o.MaxTracksPerSplit == 0 {
		o.MaxTracksPerSplit = DefaultMaxTracksPerSplit
	}
	if o.MaxTracksPerSplit < 0 {
		return fmt.Errorf("max tracks per split must be positive, got %d", o.MaxTracksPerSplit)
	}
	if o.MaxTimePerSplit == 0 {
		o.MaxTimePerSplit = DefaultMaxTimePerSplit
	}
	if o.MaxTimePerSplit < 0 {
		return fmt.Errorf("max time per split must be positive, got %s", o.MaxTimePerSplit)
	}

	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", o.Workers)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Geometry returns the geometry kernel configured by the options.
func (o Options) Geometry() geom.Geometry {
	return geom.Geometry{TurnRadius: o.TurnRadius, StraightLength: o.StraightLength}
}

// SplitResult holds the outcome of one split's search.
type SplitResult struct {
	Spec SplitSpec
	// Layouts are the accepted layouts, in discovery order.
	Layouts []track.Sequence
	// Elapsed is the wall-clock time the split search took.
	Elapsed time.Duration
	// TimedOut reports that the split hit its time budget before the cap.
	TimedOut bool
	// Infeasible reports that the start sequence demanded more of a symbol
	// than this split allows; such splits are skipped, not failed.
	Infeasible bool
}

// Stats summarizes a whole search run.
type Stats struct {
	Splits   int
	Found    int
	Elapsed  time.Duration
	TimedOut int // number of splits that hit the time budget
}

// Result is the outcome of [Engine.Run]: the merged registry plus the
// per-split breakdown.
type Result struct {
	Registry *registry.Registry
	Splits   []SplitResult
	Stats    Stats
}

// Layouts returns the de-duplicated, sorted set of accepted layouts.
func (r *Result) Layouts() []track.Sequence { return r.Registry.Layouts() }

// Empty reports whether the search found no layouts at all. This is an
// informational condition, not an error.
func (r *Result) Empty() bool { return r.Registry.Len() == 0 }
