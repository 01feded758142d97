package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/slotforge/slotforge/pkg/track"
)

var testGeom = Geometry{TurnRadius: 0.3, StraightLength: 0.345}

func TestAdvance_Straight(t *testing.T) {
	p := testGeom.Advance(Pose{}, track.Straight)
	if !scalar.EqualWithinAbs(p.X, 0, 1e-12) || !scalar.EqualWithinAbs(p.Y, 0.345, 1e-12) {
		t.Errorf("straight from origin = (%g, %g), want (0, 0.345)", p.X, p.Y)
	}
	if p.Theta != 0 {
		t.Errorf("straight changed heading: %g", p.Theta)
	}

	// After one left turn the heading is 60° and a straight moves along it.
	p = testGeom.Advance(Pose{}, track.Left)
	q := testGeom.Advance(p, track.Straight)
	wantX := p.X - 0.345*math.Sin(p.Theta)
	wantY := p.Y + 0.345*math.Cos(p.Theta)
	if !scalar.EqualWithinAbs(q.X, wantX, 1e-12) || !scalar.EqualWithinAbs(q.Y, wantY, 1e-12) {
		t.Errorf("straight after left = (%g, %g), want (%g, %g)", q.X, q.Y, wantX, wantY)
	}
}

func TestAdvance_TurnsAreMirrors(t *testing.T) {
	l := testGeom.Advance(Pose{}, track.Left)
	r := testGeom.Advance(Pose{}, track.Right)
	if !scalar.EqualWithinAbs(l.Theta, -r.Theta, 1e-12) {
		t.Errorf("headings not mirrored: %g vs %g", l.Theta, r.Theta)
	}
	if !scalar.EqualWithinAbs(l.X, -r.X, 1e-12) {
		t.Errorf("x displacements not mirrored: %g vs %g", l.X, r.X)
	}
	if !scalar.EqualWithinAbs(l.Y, r.Y, 1e-12) {
		t.Errorf("y displacements differ: %g vs %g", l.Y, r.Y)
	}
}

func TestFinalPose_FullTurnCircleClosesExactly(t *testing.T) {
	for _, seq := range []track.Sequence{"LLLLLL", "RRRRRR"} {
		p := testGeom.FinalPose(seq)
		if !scalar.EqualWithinAbs(p.X, 0, 1e-9) || !scalar.EqualWithinAbs(p.Y, 0, 1e-9) {
			t.Errorf("%s final position = (%g, %g), want origin", seq, p.X, p.Y)
		}
		if !scalar.EqualWithinAbs(math.Abs(p.Theta), 2*math.Pi, 1e-9) {
			t.Errorf("%s final heading = %g, want ±2π", seq, p.Theta)
		}
	}
}

func TestClosed(t *testing.T) {
	tests := []struct {
		seq  track.Sequence
		want bool
	}{
		{"LLLLLL", true},
		{"RRRRRR", true},
		{"SSSS", false},
		{"LLL", false},
		{"LLLLLLS", false},
	}
	for _, tt := range tests {
		if got := testGeom.Closed(tt.seq, 0.05, 0.01); got != tt.want {
			t.Errorf("Closed(%s) = %v, want %v", tt.seq, got, tt.want)
		}
	}
}

func TestTrace_Length(t *testing.T) {
	for _, seq := range []track.Sequence{"", "S", "RLS", "LLLLLL"} {
		pts := testGeom.Trace(seq)
		if len(pts) != len(seq)+1 {
			t.Errorf("Trace(%q) has %d points, want %d", seq, len(pts), len(seq)+1)
		}
	}
	if pts := testGeom.Trace(""); pts[0] != (Point{}) {
		t.Errorf("trace must start at origin, got %+v", pts[0])
	}
}

func TestTrace_MatchesFinalPose(t *testing.T) {
	seq := track.Sequence("RSLSRRLS")
	pts := testGeom.Trace(seq)
	p := testGeom.FinalPose(seq)
	last := pts[len(pts)-1]
	if !scalar.EqualWithinAbs(last.X, p.X, 1e-12) || !scalar.EqualWithinAbs(last.Y, p.Y, 1e-12) {
		t.Errorf("trace end (%g, %g) != final pose (%g, %g)", last.X, last.Y, p.X, p.Y)
	}
}

func TestIsSimple(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want bool
	}{
		{
			name: "open arc",
			pts:  testGeom.Trace("LLLLL"),
			want: true,
		},
		{
			name: "straight continuation",
			pts:  []Point{{0, 0}, {0, 1}, {0, 2}},
			want: true,
		},
		{
			name: "crossing segments",
			pts:  []Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}},
			want: false,
		},
		{
			name: "fold back",
			pts:  []Point{{0, 0}, {0, 2}, {0, 1}},
			want: false,
		},
		{
			name: "touch without crossing",
			pts:  []Point{{0, 0}, {2, 0}, {2, 2}, {1, 0}},
			want: false,
		},
		{
			name: "closing onto start",
			pts:  []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSimple(tt.pts); got != tt.want {
				t.Errorf("IsSimple = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClearanceOK(t *testing.T) {
	pts := testGeom.Trace("LLLLL")
	if !ClearanceOK(pts, 0.6*testGeom.StraightLength) {
		t.Error("open turn arc should satisfy default clearance")
	}
	if ClearanceOK([]Point{{0, 0}, {1, 0}, {0.05, 0.05}}, 0.2) {
		t.Error("near-coincident points should fail clearance")
	}
	if !ClearanceOK(nil, 0.2) {
		t.Error("empty trace should pass vacuously")
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{-2 * math.Pi, 0},
		{4 * math.Pi, 0},
		{math.Pi / 3, math.Pi / 3},
		{2*math.Pi - 0.001, -0.001},
		{-2*math.Pi + 0.001, 0.001},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); !scalar.EqualWithinAbs(got, tt.want, 1e-12) {
			t.Errorf("wrapAngle(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
