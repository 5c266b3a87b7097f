package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search KEYWORD",
	Short: "Search items by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		results := store.SearchItems(args[0])
		if len(results) == 0 {
			fmt.Println("No items found.")
			return nil
		}
		for _, item := range results {
			fmt.Printf("%-10s %-30s %s\n", item.Type, item.Name, item.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
