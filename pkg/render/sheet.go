package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

// sheetCols is the number of panels per row on a layout sheet.
const sheetCols = 3

// panelSize is the edge length of one panel on a layout sheet.
const panelSize = 4 * vg.Inch

// WriteSheetPNG renders every layout onto one PNG sheet, three panels per
// row. Handy for eyeballing a whole run at once.
func WriteSheetPNG(w io.Writer, g geom.Geometry, seqs []track.Sequence) error {
	if len(seqs) == 0 {
		return fmt.Errorf("no layouts to render")
	}

	cols := sheetCols
	if len(seqs) < cols {
		cols = len(seqs)
	}
	rows := (len(seqs) + cols - 1) / cols

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
		for c := range plots[r] {
			i := r*cols + c
			if i >= len(seqs) {
				continue
			}
			p, err := Figure(g, seqs[i])
			if err != nil {
				return fmt.Errorf("layout %s: %w", seqs[i], err)
			}
			plots[r][c] = p
		}
	}

	img := vgimg.New(vg.Length(cols)*panelSize, vg.Length(rows)*panelSize)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	return nil
}
