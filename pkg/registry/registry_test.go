package registry

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slotforge/slotforge/pkg/track"
)

func TestRegistry_AddDeduplicates(t *testing.T) {
	r := New()
	if !r.Add("RRRRRR") {
		t.Error("first Add should report new")
	}
	if r.Add("RRRRRR") {
		t.Error("second Add should report duplicate")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if !r.Contains("RRRRRR") {
		t.Error("Contains should find added layout")
	}
}

func TestRegistry_AddAll(t *testing.T) {
	r := New()
	added := r.AddAll([]track.Sequence{"RRRRRR", "LLLLLL", "RRRRRR"})
	if added != 2 {
		t.Errorf("AddAll returned %d, want 2", added)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegistry_LayoutsSorted(t *testing.T) {
	r := New()
	r.AddAll([]track.Sequence{"SSRR", "LLRR", "RRSS"})
	want := []track.Sequence{"LLRR", "RRSS", "SSRR"}
	if diff := cmp.Diff(want, r.Layouts()); diff != "" {
		t.Errorf("Layouts mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_UniqueCyclic(t *testing.T) {
	r := New()
	// Two rotations of the same physical track plus one distinct layout.
	r.AddAll([]track.Sequence{"RLS", "SRL", "SSS"})
	got := r.UniqueCyclic()
	want := []track.Sequence{"LSR", "SSS"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UniqueCyclic mismatch (-want +got):\n%s", diff)
	}
	// The full set keeps both rotations.
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestRegistry_ConcurrentAdds(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	seqs := []track.Sequence{"RRRRRR", "LLLLLL", "RRSSLL", "SLSLSL"}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.AddAll(seqs)
		}()
	}
	wg.Wait()
	if r.Len() != len(seqs) {
		t.Errorf("Len = %d, want %d", r.Len(), len(seqs))
	}
}
