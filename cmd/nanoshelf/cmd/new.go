package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanoshelf/shelf/storage"
	"github.com/arthur-debert/nanoshelf/types"
)

var (
	newParent string
	newBlock  string
	newIcon   string
	newColor  string
)

var newCmd = &cobra.Command{
	Use:   "new {notebook|folder|document} NAME",
	Short: "Create a notebook, folder or document",
	Long: `Create a new item.

Notebooks always live at the root. Folders and documents take an optional
--parent; documents usually reference a block with --block.

Examples:
  nanoshelf new notebook "Work"
  nanoshelf new folder "Projects" --parent work-...
  nanoshelf new document "Roadmap" --parent projects-... --block blk42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := types.ItemType(args[0])
		if !typ.Valid() {
			return fmt.Errorf("unknown item type %q (want notebook, folder or document)", args[0])
		}

		store, cleanup, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		parentID := ""
		if newParent != "" {
			if parentID, err = resolveItem(store, newParent); err != nil {
				return err
			}
		}

		item, err := store.CreateItem(cmd.Context(), args[1], typ, storage.CreateOptions{
			ParentID: parentID,
			BlockID:  newBlock,
			Icon:     newIcon,
			Color:    newColor,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", typ, err)
		}
		fmt.Printf("Created %s %q (%s)\n", item.Type, item.Name, item.ID)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newParent, "parent", "p", "", "parent container (id or name)")
	newCmd.Flags().StringVarP(&newBlock, "block", "b", "", "referenced block id")
	newCmd.Flags().StringVar(&newIcon, "icon", "", "icon hint")
	newCmd.Flags().StringVar(&newColor, "color", "", "color hint")
	rootCmd.AddCommand(newCmd)
}
