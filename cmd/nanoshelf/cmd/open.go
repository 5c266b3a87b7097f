package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open ITEM",
	Short: "Jump to the block an item references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		id, err := resolveItem(store, args[0])
		if err != nil {
			return err
		}
		if err := store.NavigateToItem(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to open item: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
