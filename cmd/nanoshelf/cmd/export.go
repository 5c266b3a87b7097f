package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanoshelf/formats"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the tree as a text outline",
	Long: `Render the whole tree (closed notebooks included) in one of the
registered outline formats and print it or write it to a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formats.Get(exportFormat)
		if err != nil {
			names := formats.List()
			sort.Strings(names)
			return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}

		store, cleanup, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := format.Render(formats.BuildOutline(store.Snapshot()))
		if err != nil {
			return fmt.Errorf("failed to render export: %w", err)
		}
		if exportOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Wrote %s.\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "plaintext", "output format")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
