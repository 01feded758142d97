package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/slotforge/slotforge/pkg/track"
)

func TestCollectLayouts_Args(t *testing.T) {
	seqs, err := collectLayouts([]string{"RRRSRRRS", "llllll"}, &renderOpts{})
	if err != nil {
		t.Fatalf("collectLayouts: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d layouts", len(seqs))
	}
	// Lowercase input is accepted and normalized.
	if seqs[1] != track.Sequence("LLLLLL") {
		t.Errorf("layout = %q", seqs[1])
	}
}

func TestCollectLayouts_Invalid(t *testing.T) {
	if _, err := collectLayouts([]string{"RRX"}, &renderOpts{}); err == nil {
		t.Error("invalid piece should fail")
	}
	if _, err := collectLayouts(nil, &renderOpts{}); err == nil {
		t.Error("no layouts and no input file should fail")
	}
	if _, err := collectLayouts([]string{"RR"}, &renderOpts{input: "results.json"}); err == nil {
		t.Error("args plus --input should fail")
	}
}

func TestCollectLayouts_InputFile(t *testing.T) {
	doc := runDocument{Layouts: []string{"RRRSRRRS", "RRRSSRRRSS"}}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	seqs, err := collectLayouts(nil, &renderOpts{input: path})
	if err != nil {
		t.Fatalf("collectLayouts: %v", err)
	}
	if len(seqs) != 2 || seqs[0] != track.Sequence("RRRSRRRS") {
		t.Errorf("layouts = %v", seqs)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		seq      track.Sequence
		format   string
		multiple bool
		want     string
	}{
		{"derived", "", "RRRSRRRS", "png", false, "track_RRRSRRRS.png"},
		{"explicit single", "out.svg", "RRRSRRRS", "svg", false, "out.svg"},
		{"explicit multiple", "out.png", "RRRSRRRS", "png", true, "out_RRRSRRRS.png"},
		{"base without extension", "figs", "LLLLLL", "pdf", true, "figs_LLLLLL.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.seq, tt.format, tt.multiple)
			if got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderGeometryDefaults(t *testing.T) {
	g := renderGeometry(&renderOpts{})
	if g.TurnRadius != 0.3 || g.StraightLength != 0.345 {
		t.Errorf("defaults = %+v", g)
	}

	g = renderGeometry(&renderOpts{turnRadius: 0.2, straightLength: 0.25})
	if g.TurnRadius != 0.2 || g.StraightLength != 0.25 {
		t.Errorf("overrides = %+v", g)
	}
}
