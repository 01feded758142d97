package render

import (
	"fmt"
	"io"
	"os"

	"github.com/yofu/dxf"

	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

// WriteDXF exports the layout centerline as a chain of LINE entities on a
// TRACK layer. Arcs are emitted as the same chord chains the plots use, which
// keeps CAD imports simple and tolerant.
func WriteDXF(w io.Writer, g geom.Geometry, seq track.Sequence) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer("TRACK", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	pts := SamplePath(g, seq)
	for i := 0; i+1 < len(pts); i++ {
		if _, err := d.Line(pts[i].X, pts[i].Y, 0, pts[i+1].X, pts[i+1].Y, 0); err != nil {
			return fmt.Errorf("add segment %d: %w", i, err)
		}
	}

	// The drawing API writes to named files only, so stage through a temp
	// file and stream it out.
	f, err := os.CreateTemp("", "slotforge-*.dxf")
	if err != nil {
		return err
	}
	tmp := f.Name()
	f.Close()
	defer os.Remove(tmp)

	if err := d.SaveAs(tmp); err != nil {
		return fmt.Errorf("write dxf: %w", err)
	}
	f, err = os.Open(tmp)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy dxf: %w", err)
	}
	return nil
}
