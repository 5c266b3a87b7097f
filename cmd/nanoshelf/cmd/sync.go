package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncQuery string

var syncCmd = &cobra.Command{
	Use:   "sync FOLDER",
	Short: "Refresh a query-backed folder",
	Long: `Re-run the query behind a query-backed folder and reconcile its
children with the result set. With --query-block the folder is first marked
as backed by that block.`,
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
		if syncQuery != "" {
			if err := store.SetQueryBlock(cmd.Context(), id, syncQuery); err != nil {
				return fmt.Errorf("failed to mark folder as query-backed: %w", err)
			}
		}
		if err := store.SyncQueryChildren(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to sync folder: %w", err)
		}
		fmt.Printf("Synced %d children.\n", len(store.ItemChildren(id)))
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncQuery, "query-block", "", "block holding the query definition")
	rootCmd.AddCommand(syncCmd)
}
