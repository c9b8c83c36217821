package cmd

import (
	"fmt"
	"os"
	"strconv"

	"colcat/internal/clix"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// historyCmd lists recent categorization runs from the local history store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent categorization runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		limit, err := clix.ParseLimit(cmd.Flags())
		if err != nil {
			return err
		}

		runs, err := appInstance.RunStore.ListRuns(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("failed to list run history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"When", "File", "Column", "Model", "Items", "Chunks", "Fallbacks", "Categories", "Cost"})
		for _, r := range runs {
			table.Append([]string{
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.FilePath,
				r.Column,
				r.Model,
				strconv.Itoa(r.ItemCount),
				strconv.Itoa(r.ChunkCount),
				strconv.Itoa(r.FallbackCount),
				strconv.Itoa(r.CategoryCount),
				fmt.Sprintf("$%.4f", r.CostUSD),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
}
