// Package geom is the geometry kernel for track layouts.
//
// Every piece advances the car pose (orientation plus position) by a closed
// form derived from the piece geometry, so replaying a sequence accumulates
// only floating-point rounding, never integration error. Turn pieces sweep a
// fixed 60° arc; straight pieces translate along the current heading.
//
// The kernel answers three questions about a sequence: where does it end
// ([Geometry.FinalPose]), which boundary points does it visit
// ([Geometry.Trace]), and does it close into a lap ([Geometry.Closed]).
// Validity of a closed layout is checked on the trace with [IsSimple] and
// [ClearanceOK].
package geom

import (
	"math"

	"github.com/slotforge/slotforge/pkg/track"
)

// TurnAngle is the arc swept by a single turn piece: 60°.
const TurnAngle = math.Pi / 3

// Point is a position in track coordinates (meters).
type Point struct {
	X, Y float64
}

// Pose is the car state after traversing a layout prefix from the origin:
// heading Theta (radians, counterclockwise, 0 = +Y) and position (X, Y).
type Pose struct {
	Theta float64
	X, Y  float64
}

// Geometry holds the physical scale of the piece catalog.
type Geometry struct {
	// TurnRadius is the centerline radius of turn pieces, in meters.
	TurnRadius float64
	// StraightLength is the length of a straight piece, in meters.
	StraightLength float64
}

// Advance returns the pose after appending one piece to a layout that ends in
// pose p. Unknown pieces leave the pose unchanged.
func (g Geometry) Advance(p Pose, piece track.Piece) Pose {
	switch piece {
	case track.Left:
		t := p.Theta + TurnAngle
		return Pose{
			Theta: t,
			X:     p.X + g.TurnRadius*(math.Cos(t)-math.Cos(p.Theta)),
			Y:     p.Y + g.TurnRadius*(math.Sin(t)-math.Sin(p.Theta)),
		}
	case track.Right:
		t := p.Theta - TurnAngle
		return Pose{
			Theta: t,
			X:     p.X - g.TurnRadius*(math.Cos(t)-math.Cos(p.Theta)),
			Y:     p.Y - g.TurnRadius*(math.Sin(t)-math.Sin(p.Theta)),
		}
	case track.Straight:
		return Pose{
			Theta: p.Theta,
			X:     p.X - g.StraightLength*math.Sin(p.Theta),
			Y:     p.Y + g.StraightLength*math.Cos(p.Theta),
		}
	}
	return p
}

// FinalPose replays the whole sequence from the origin pose.
func (g Geometry) FinalPose(seq track.Sequence) Pose {
	var p Pose
	for i := 0; i < len(seq); i++ {
		p = g.Advance(p, track.Piece(seq[i]))
	}
	return p
}

// Trace returns the ordered piece-boundary points of the sequence, starting
// at the origin. The result always has len(seq)+1 points.
func (g Geometry) Trace(seq track.Sequence) []Point {
	pts := make([]Point, 0, len(seq)+1)
	var p Pose
	pts = append(pts, Point{})
	for i := 0; i < len(seq); i++ {
		p = g.Advance(p, track.Piece(seq[i]))
		pts = append(pts, Point{X: p.X, Y: p.Y})
	}
	return pts
}

// Closed reports whether the sequence completes a lap: the final position is
// within lapTol of the origin and the final heading is within orientTol of a
// whole number of turns.
func (g Geometry) Closed(seq track.Sequence, lapTol, orientTol float64) bool {
	p := g.FinalPose(seq)
	return math.Hypot(p.X, p.Y) < lapTol && math.Abs(wrapAngle(p.Theta)) < orientTol
}

// wrapAngle maps theta to the equivalent angle in (-π, π], i.e. the signed
// distance to the nearest multiple of 2π.
func wrapAngle(theta float64) float64 {
	d := math.Mod(theta, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// ClearanceOK reports whether every pair of distinct trace points is at least
// minSep apart. It returns false on the first violating pair.
func ClearanceOK(pts []Point, minSep float64) bool {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			dx := pts[i].X - pts[j].X
			dy := pts[i].Y - pts[j].Y
			if math.Hypot(dx, dy) < minSep {
				return false
			}
		}
	}
	return true
}
