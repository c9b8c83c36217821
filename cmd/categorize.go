package cmd

import (
	"fmt"
	"os"
	"strconv"

	"colcat/internal/clix"
	"colcat/internal/services"
	"colcat/pkg/categorizer"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	categorizeFile          string
	categorizeColumn        string
	categorizeOutput        string
	categorizeMaxCategories int
)

// categorizeCmd runs the batch categorization pipeline over one column of a
// tabular file.
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize the values of one column of a CSV/TSV file",
	Long: `Reads the given file, extracts the designated column, deduplicates its
values and asks the configured LLM provider for a category label per unique
value. Results are printed as a table; with --output, an annotated copy of
the file is written with Category, Confidence and Reason columns appended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		predefined, err := clix.ParseCategories(cmd.Flags())
		if err != nil {
			return err
		}

		result, err := appInstance.RunService.CategorizeFile(cmd.Context(), services.RunParams{
			FilePath:   categorizeFile,
			Column:     categorizeColumn,
			OutputPath: categorizeOutput,
			Options: categorizer.Options{
				MaxCategories:        categorizeMaxCategories,
				PredefinedCategories: predefined,
			},
		})
		if err != nil {
			return err
		}

		if len(result.Items) == 0 {
			fmt.Println("No non-empty values found in the column; nothing to categorize.")
			return nil
		}

		renderItems(result.Items)

		summary := fmt.Sprintf("%d unique values, %d categories, %d requests",
			result.Run.ItemCount, result.Run.CategoryCount, result.Run.ChunkCount)
		if result.Run.FallbackCount > 0 {
			summary += color.YellowString(", %d fallback records", result.Run.FallbackCount)
		}
		if result.Run.CostUSD > 0 {
			summary += fmt.Sprintf(", $%.4f", result.Run.CostUSD)
		}
		fmt.Println(color.GreenString("Done: ") + summary)
		return nil
	},
}

func renderItems(items []categorizer.Item) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Text", "Category", "Confidence", "Reason"})
	table.SetAutoWrapText(false)
	for _, item := range items {
		table.Append([]string{
			item.OriginalText,
			item.Category,
			strconv.FormatFloat(item.Confidence, 'f', 2, 64),
			item.Reason,
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
	categorizeCmd.Flags().StringVarP(&categorizeFile, "file", "f", "", "Path to the CSV/TSV file (required)")
	categorizeCmd.Flags().StringVarP(&categorizeColumn, "column", "c", "", "Name of the column to categorize (required)")
	categorizeCmd.Flags().StringVarP(&categorizeOutput, "output", "o", "", "Write an annotated copy of the file to this path")
	// Read back through clix.ParseCategories, no variable needed.
	categorizeCmd.Flags().String("categories", "", "Comma-separated list of preferred category names")
	categorizeCmd.Flags().IntVar(&categorizeMaxCategories, "max-categories", 0, "Cap on distinct categories across the run (0 = no cap)")
	categorizeCmd.MarkFlagRequired("file")
	categorizeCmd.MarkFlagRequired("column")
}
