package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	sferrors "github.com/slotforge/slotforge/pkg/errors"
	"github.com/slotforge/slotforge/pkg/render"
	"github.com/slotforge/slotforge/pkg/track"
	"github.com/slotforge/slotforge/pkg/track/geom"
)

const (
	defaultFigureWidth  = 6 // inches
	defaultFigureHeight = 6 // inches
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output         string  // output file path (or base path for multiple layouts)
	format         string  // output format: png, svg, pdf, dxf
	input          string  // JSON results file written by generate -o
	interactive    bool    // pick one layout from input interactively
	sheet          bool    // render all layouts onto one PNG sheet
	turnRadius     float64 // turn piece radius in meters
	straightLength float64 // straight piece length in meters
	width          float64 // figure width in inches
	height         float64 // figure height in inches
}

// newRenderCmd creates the render command for generating layout figures.
// Layouts come either from arguments or from a results file, and render to
// PNG, SVG, PDF, or DXF.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		format: render.FormatPNG,
		width:  defaultFigureWidth,
		height: defaultFigureHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [layout...]",
		Short: "Render track layouts as figures",
		Long: `Render draws one or more layouts (piece sequences like RRRSSRRRSS) as
figures. Layouts come from arguments or from a JSON results file produced by
'generate --output'. With --sheet, all layouts land on a single PNG grid.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(opts.format); err != nil {
				return err
			}
			return runRenderCmd(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (or base path for multiple layouts)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png (default), svg, pdf, dxf")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "JSON results file from 'generate --output'")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "pick one layout from the input file interactively")
	cmd.Flags().BoolVar(&opts.sheet, "sheet", false, "render all layouts onto one PNG sheet")
	cmd.Flags().Float64Var(&opts.turnRadius, "turn-radius", 0, "turn piece radius in meters")
	cmd.Flags().Float64Var(&opts.straightLength, "straight-length", 0, "straight piece length in meters")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "figure width in inches")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "figure height in inches")

	return cmd
}

// renderGeometry builds the geometry kernel for rendering, falling back to
// the catalog defaults.
func renderGeometry(opts *renderOpts) geom.Geometry {
	g := geom.Geometry{TurnRadius: opts.turnRadius, StraightLength: opts.straightLength}
	if g.TurnRadius == 0 {
		g.TurnRadius = 0.3
	}
	if g.StraightLength == 0 {
		g.StraightLength = 0.345
	}
	return g
}

// collectLayouts resolves the layouts to render from args or the input file.
func collectLayouts(args []string, opts *renderOpts) ([]track.Sequence, error) {
	if len(args) > 0 && opts.input != "" {
		return nil, fmt.Errorf("pass layouts as arguments or via --input, not both")
	}

	if len(args) > 0 {
		seqs := make([]track.Sequence, 0, len(args))
		for _, a := range args {
			seq, err := track.Parse(strings.ToUpper(a))
			if err != nil {
				return nil, sferrors.Wrap(sferrors.ErrCodeInvalidSequence, err, "layout %q", a)
			}
			seqs = append(seqs, seq)
		}
		return seqs, nil
	}

	if opts.input == "" {
		return nil, fmt.Errorf("no layouts given (pass sequences or --input results.json)")
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return nil, err
	}
	var doc runDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", opts.input, err)
	}
	if len(doc.Layouts) == 0 {
		return nil, fmt.Errorf("%s contains no layouts", opts.input)
	}
	seqs := make([]track.Sequence, 0, len(doc.Layouts))
	for _, l := range doc.Layouts {
		seq, err := track.Parse(l)
		if err != nil {
			return nil, sferrors.Wrap(sferrors.ErrCodeInvalidSequence, err, "layout %q in %s", l, opts.input)
		}
		seqs = append(seqs, seq)
	}
	return seqs, nil
}

// runRenderCmd resolves layouts and dispatches to sheet or per-layout output.
func runRenderCmd(ctx context.Context, args []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	seqs, err := collectLayouts(args, opts)
	if err != nil {
		return err
	}

	if opts.interactive {
		seq, ok, err := pickLayout(seqs)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("No layout selected")
			return nil
		}
		seqs = []track.Sequence{seq}
	}

	g := renderGeometry(opts)

	if opts.sheet {
		if opts.format != render.FormatPNG {
			return fmt.Errorf("--sheet only supports png output")
		}
		path := opts.output
		if path == "" {
			path = "layouts.png"
		}
		if err := writeFigure(path, func(f *os.File) error {
			return render.WriteSheetPNG(f, g, seqs)
		}); err != nil {
			return err
		}
		logger.Infof("Rendered %d layouts", len(seqs))
		printFile(path)
		return nil
	}

	for _, seq := range seqs {
		path := outputPath(opts.output, seq, opts.format, len(seqs) > 1)
		if err := writeFigure(path, func(f *os.File) error {
			return render.Write(f, g, seq, opts.format, vg.Length(opts.width)*vg.Inch, vg.Length(opts.height)*vg.Inch)
		}); err != nil {
			return fmt.Errorf("render %s: %w", seq, err)
		}
		logger.Debugf("Rendered %s", seq)
		printFile(path)
	}
	return nil
}

// outputPath derives the output file for one layout. With multiple layouts
// the sequence itself lands in the name to keep files distinct.
func outputPath(output string, seq track.Sequence, format string, multiple bool) string {
	if output == "" {
		return fmt.Sprintf("track_%s.%s", seq, format)
	}
	if !multiple {
		return output
	}
	base := strings.TrimSuffix(output, "."+format)
	return fmt.Sprintf("%s_%s.%s", base, seq, format)
}

// writeFigure creates path and hands the file to write.
func writeFigure(path string, write func(*os.File) error) error {
	if err := sferrors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
