package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanoshelf/shelf"
	"github.com/arthur-debert/nanoshelf/types"
)

var (
	listShowIDs bool
	listAll     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the shelf tree",
	Long: `Print the item tree as an indented outline.

Closed notebooks are hidden by default; pass --all to include them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		var roots []types.Item
		if listAll {
			snap := store.Snapshot()
			for _, item := range snap.ChildrenOf("") {
				roots = append(roots, item.Clone())
			}
		} else {
			roots = store.RootItems()
		}
		if len(roots) == 0 {
			fmt.Println("The shelf is empty.")
			return nil
		}
		for _, root := range roots {
			printTree(store, root, 0)
		}
		return nil
	},
}

func printTree(store *shelf.Store, item types.Item, depth int) {
	label := item.Name
	if item.Type != types.ItemDocument {
		label += "/"
	}
	if item.IsQueryBlock {
		label += " (query)"
	}
	line := strings.Repeat("  ", depth) + label
	if listShowIDs {
		line += "  [" + item.ID + "]"
	}
	fmt.Println(line)
	for _, child := range store.ItemChildren(item.ID) {
		printTree(store, child, depth+1)
	}
}

func init() {
	listCmd.Flags().BoolVar(&listShowIDs, "ids", false, "show item ids")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include closed notebooks")
	rootCmd.AddCommand(listCmd)
}
