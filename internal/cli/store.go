package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slotforge/slotforge/pkg/store"
)

// newStoreCmd creates the result store management command.
func newStoreCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the result store",
	}
	cmd.PersistentFlags().StringVar(&dir, "store-dir", defaultStoreDir, "result store directory")

	cmd.AddCommand(newStoreClearCmd(&dir))
	cmd.AddCommand(newStorePathCmd(&dir))

	return cmd
}

// newStoreClearCmd creates the "store clear" subcommand.
func newStoreClearCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored search results",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.NewFileStore(*dir)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			if err := s.Clear(); err != nil {
				return fmt.Errorf("clear store: %w", err)
			}

			printSuccess("Cleared result store")
			printDetail("Directory: %s", *dir)
			return nil
		},
	}
}

// newStorePathCmd creates the "store path" subcommand.
func newStorePathCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the result store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(*dir)
			return nil
		},
	}
}
