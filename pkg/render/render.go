// Package render turns track layouts into figures.
//
// Layout geometry comes from the geometry kernel; this package only samples
// the centerline (turn arcs become short chord chains) and draws it. Single
// layouts render to PNG, SVG, or PDF via gonum/plot; [WriteSheetPNG] arranges
// many layouts into one multi-panel sheet; [WriteDXF] exports the centerline
// for CNC and CAD workflows.
package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

// Supported single-figure output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatDXF = "dxf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatPDF: true,
	FormatDXF: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, svg, pdf, dxf)", format)
	}
	return nil
}

// arcSegments is the number of chords used to approximate one 60° arc.
const arcSegments = 16

// SamplePath returns the layout centerline as a dense point chain: straights
// contribute their endpoints, turn arcs are subdivided into arcSegments
// chords.
func SamplePath(g geom.Geometry, seq track.Sequence) []geom.Point {
	pts := []geom.Point{{}}
	var p geom.Pose
	for i := 0; i < len(seq); i++ {
		piece := track.Piece(seq[i])
		switch piece {
		case track.Left:
			// Arc center sits perpendicular-left of the heading; the circle
			// passes through the current position at angle p.Theta.
			cx := p.X - g.TurnRadius*math.Cos(p.Theta)
			cy := p.Y - g.TurnRadius*math.Sin(p.Theta)
			for s := 1; s <= arcSegments; s++ {
				phi := p.Theta + geom.TurnAngle*float64(s)/arcSegments
				pts = append(pts, geom.Point{
					X: cx + g.TurnRadius*math.Cos(phi),
					Y: cy + g.TurnRadius*math.Sin(phi),
				})
			}
		case track.Right:
			cx := p.X + g.TurnRadius*math.Cos(p.Theta)
			cy := p.Y + g.TurnRadius*math.Sin(p.Theta)
			for s := 1; s <= arcSegments; s++ {
				phi := p.Theta - geom.TurnAngle*float64(s)/arcSegments
				pts = append(pts, geom.Point{
					X: cx - g.TurnRadius*math.Cos(phi),
					Y: cy - g.TurnRadius*math.Sin(phi),
				})
			}
		}
		p = g.Advance(p, piece)
		if piece == track.Straight {
			pts = append(pts, geom.Point{X: p.X, Y: p.Y})
		}
	}
	return pts
}

// Figure builds a plot of one layout: the sampled centerline on equal-aspect
// axes, titled with the layout string.
func Figure(g geom.Geometry, seq track.Sequence) (*plot.Plot, error) {
	pts := SamplePath(g, seq)

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("build centerline: %w", err)
	}
	line.Width = vg.Points(1.5)

	p := plot.New()
	p.Title.Text = "Track Map: " + seq.String()
	p.X.Label.Text = "X [m]"
	p.Y.Label.Text = "Y [m]"
	p.Add(line)
	equalAspect(p, pts)
	return p, nil
}

// equalAspect pads the data bounds and stretches the shorter axis so both
// spans match, keeping arcs circular.
func equalAspect(p *plot.Plot, pts []geom.Point) {
	if len(pts) == 0 {
		return
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, pt := range pts {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	const pad = 0.1
	minX, maxX = minX-pad, maxX+pad
	minY, maxY = minY-pad, maxY+pad

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX > spanY {
		grow := (spanX - spanY) / 2
		minY, maxY = minY-grow, maxY+grow
	} else {
		grow := (spanY - spanX) / 2
		minX, maxX = minX-grow, maxX+grow
	}
	p.X.Min, p.X.Max = minX, maxX
	p.Y.Min, p.Y.Max = minY, maxY
}

// Write renders one layout to w in the given plot format (png, svg, or pdf).
// DXF has its own entity-based path, see [WriteDXF].
func Write(w io.Writer, g geom.Geometry, seq track.Sequence, format string, width, height vg.Length) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if format == FormatDXF {
		return WriteDXF(w, g, seq)
	}
	p, err := Figure(g, seq)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
