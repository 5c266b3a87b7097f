package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close NOTEBOOK",
	Short: "Hide a notebook from the root view",
	Long: `Hide a notebook and its subtree from listings without deleting
anything. Restore it with "nanoshelf restore".`,
	Args: cobra.ExactArgs(1),
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
		if err := store.CloseNotebook(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to close notebook: %w", err)
		}
		fmt.Println("Closed.")
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore NOTEBOOK",
	Short: "Make a closed notebook visible again",
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
		if err := store.RestoreNotebook(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to restore notebook: %w", err)
		}
		fmt.Println("Restored.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(restoreCmd)
}
