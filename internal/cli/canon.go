package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	sferrors "github.com/slotforge/slotforge/pkg/errors"
	"github.com/slotforge/slotforge/pkg/track"
)

// newCanonCmd creates the canon command for canonicalizing layout strings.
// Two layouts that are rotations of each other describe the same physical
// loop; canon maps each to the lexicographically smallest rotation.
func newCanonCmd() *cobra.Command {
	var unique bool

	cmd := &cobra.Command{
		Use:   "canon [layout...]",
		Short: "Canonicalize layout strings",
		Long: `Canon rewrites each layout to its canonical rotation, the smallest string
among all cyclic rotations. With --unique, rotations of the same loop
collapse to a single line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seqs := make([]track.Sequence, 0, len(args))
			for _, a := range args {
				seq, err := track.Parse(strings.ToUpper(a))
				if err != nil {
					return sferrors.Wrap(sferrors.ErrCodeInvalidSequence, err, "layout %q", a)
				}
				seqs = append(seqs, seq)
			}

			if unique {
				for _, c := range track.UniqueCyclic(seqs) {
					fmt.Println(c)
				}
				return nil
			}
			for _, seq := range seqs {
				fmt.Println(track.CanonicalRotation(seq))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "collapse cyclic duplicates")
	return cmd
}
