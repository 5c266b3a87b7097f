package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sortCmd = &cobra.Command{
	Use:   "sort [CONTAINER]",
	Short: "Sort a container's children by natural name order",
	Long: `Sort the children of a container (or the root level when no argument
is given) naturally: "Doc 2" before "Doc 10", "Doc" before "Doc 1".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		parentID := ""
		if len(args) == 1 {
			if parentID, err = resolveItem(store, args[0]); err != nil {
				return err
			}
		}
		if err := store.NaturalSortChildren(cmd.Context(), parentID); err != nil {
			return fmt.Errorf("failed to sort: %w", err)
		}
		fmt.Println("Sorted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
}
