package search

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slotforge/slotforge/pkg/observability"
	"github.com/slotforge/slotforge/pkg/registry"
	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

// Engine runs layout searches. The zero value is usable; NewEngine only
// exists to mirror how callers construct the other top-level services.
type Engine struct{}

// NewEngine returns a search engine.
func NewEngine() *Engine { return &Engine{} }

// Run validates opts, searches every split, and merges the accepted layouts.
//
// Splits are independent; Run searches up to opts.Workers of them
// concurrently and merges through the registry, which is the only shared
// state. When ctx is canceled mid-search, Run stops at the next pruning
// checkpoint of every in-flight branch and returns the partial result
// together with the context error.
func (e *Engine) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	splits := Splits(opts.Turns, opts.Straights)
	observability.Search().OnSearchStart(ctx, len(splits))
	start := time.Now()

	res := &Result{
		Registry: registry.New(),
		Splits:   make([]SplitResult, len(splits)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, spec := range splits {
		g.Go(func() error {
			sr := e.searchSplit(gctx, opts, spec)
			res.Splits[i] = sr
			res.Registry.AddAll(sr.Layouts)
			return nil
		})
	}
	_ = g.Wait() // workers only report through res

	res.Stats = Stats{
		Splits:  len(splits),
		Found:   res.Registry.Len(),
		Elapsed: time.Since(start),
	}
	for _, sr := range res.Splits {
		if sr.TimedOut {
			res.Stats.TimedOut++
		}
	}
	observability.Search().OnSearchComplete(ctx, res.Stats.Found, res.Stats.Elapsed)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// searchSplit explores one split depth-first. All search state is split- or
// branch-local: the budget array is copied on every descent, so backtracking
// needs no undo step.
func (e *Engine) searchSplit(ctx context.Context, opts Options, spec SplitSpec) SplitResult {
	logger := opts.Logger.With("split", spec.String())
	observability.Search().OnSplitStart(ctx, spec.String())
	start := time.Now()

	sr := SplitResult{Spec: spec}

	// Remaining per-symbol budget after the required prefix.
	var budget [len(track.Pieces)]int
	for i, p := range track.Pieces {
		budget[i] = spec.Count(p) - opts.StartSequence.Count(p)
		if budget[i] < 0 {
			sr.Infeasible = true
			logger.Debug("split infeasible for start sequence", "start", opts.StartSequence)
			observability.Search().OnSplitComplete(ctx, spec.String(), 0, time.Since(start), false)
			return sr
		}
	}

	// Forbidden run patterns: more than half of a split's straights, or of
	// its majority turn direction, may never appear consecutively.
	straightRun := track.Run(track.Straight, spec.Straights/2+1)
	turnRun := track.Run(track.Left, spec.Left/2+1)
	if spec.Right > spec.Left {
		turnRun = track.Run(track.Right, spec.Right/2+1)
	}

	kernel := opts.Geometry()
	deadline := start.Add(opts.MaxTimePerSplit)

	var dfs func(seq track.Sequence, budget [len(track.Pieces)]int)
	dfs = func(seq track.Sequence, budget [len(track.Pieces)]int) {
		if time.Now().After(deadline) {
			sr.TimedOut = true
			return
		}
		if ctx.Err() != nil {
			return
		}

		if len(seq) > 0 && kernel.Closed(seq, opts.LapTolerance, opts.OrientationTolerance) {
			if e.validClosure(kernel, opts, seq) {
				sr.Layouts = append(sr.Layouts, seq)
				observability.Search().OnLayoutAccepted(ctx, spec.String(), seq.String())
				logger.Debug("layout accepted", "layout", seq)
				return // a completed, valid lap is terminal
			}
			// Closed but invalid geometry: keep extending, a longer layout
			// may close again with a valid shape.
		}

		for i, p := range track.Pieces {
			if len(sr.Layouts) >= opts.MaxTracksPerSplit {
				return
			}
			if budget[i] == 0 {
				continue
			}
			next := seq.Append(p)
			if next.Contains(straightRun) || next.Contains(turnRun) {
				continue
			}
			child := budget
			child[i]--
			dfs(next, child)
		}
	}

	dfs(opts.StartSequence, budget)

	sr.Elapsed = time.Since(start)
	logger.Debug("split finished", "found", len(sr.Layouts), "elapsed", sr.Elapsed.Round(time.Millisecond), "timed_out", sr.TimedOut)
	observability.Search().OnSplitComplete(ctx, spec.String(), len(sr.Layouts), sr.Elapsed, sr.TimedOut)
	return sr
}

// validClosure applies the geometry-validity checks to a closed layout. The
// final piece is excluded from the trace: the piece that closes the loop is
// allowed to return to the start without counting as a self-crossing.
func (e *Engine) validClosure(kernel geom.Geometry, opts Options, seq track.Sequence) bool {
	if opts.AllowIntersections {
		return true
	}
	pts := kernel.Trace(seq[:len(seq)-1])
	return geom.IsSimple(pts) && geom.ClearanceOK(pts, opts.MinSeparation)
}
