package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete ITEM",
	Short: "Delete an item and its entire subtree",
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
		if err := store.DeleteItem(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
