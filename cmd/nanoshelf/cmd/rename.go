package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename ITEM NEW_NAME",
	Short: "Rename an item",
	Args:  cobra.ExactArgs(2),
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
		if err := store.RenameItem(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("failed to rename item: %w", err)
		}
		fmt.Printf("Renamed to %q.\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
