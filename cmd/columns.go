package cmd

import (
	"fmt"

	"colcat/internal/tabular"

	"github.com/spf13/cobra"
)

// columnsCmd lists the header row of a tabular file so the user can pick a
// column name for categorize.
var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List the columns of a CSV/TSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := tabular.ReadFile(args[0])
		if err != nil {
			return err
		}
		for i, h := range table.Header {
			fmt.Printf("%d. %s\n", i+1, h)
		}
		fmt.Printf("%d rows\n", len(table.Rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
