package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	moveTo string
	moveAt int
)

var moveCmd = &cobra.Command{
	Use:   "move ITEM",
	Short: "Move an item to a new parent or position",
	Long: `Move an item. --to names the new parent (omit for the root level);
--at picks the position among the new siblings (append when omitted).

Moves that would nest a notebook or put an item inside its own subtree are
refused.`,
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
		parentID := ""
		if moveTo != "" {
			if parentID, err = resolveItem(store, moveTo); err != nil {
				return err
			}
		}
		if err := store.MoveItem(cmd.Context(), id, parentID, moveAt); err != nil {
			return fmt.Errorf("failed to move item: %w", err)
		}
		fmt.Println("Moved.")
		return nil
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveTo, "to", "", "new parent (id or name, empty for root)")
	moveCmd.Flags().IntVar(&moveAt, "at", -1, "insert position among new siblings")
	rootCmd.AddCommand(moveCmd)
}
