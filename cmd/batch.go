package cmd

import (
	"fmt"

	"colcat/internal/clix"
	"colcat/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

var (
	batchFile          string
	batchColumn        string
	batchOutput        string
	batchMaxCategories int
)

// batchCmd enqueues a categorization job for the background worker instead
// of running it inline.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enqueue a file categorization job for the worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		predefined, err := clix.ParseCategories(cmd.Flags())
		if err != nil {
			return err
		}

		task, err := tasks.NewCategorizeFileTask(tasks.CategorizeFilePayload{
			FilePath:             batchFile,
			Column:               batchColumn,
			OutputPath:           batchOutput,
			MaxCategories:        batchMaxCategories,
			PredefinedCategories: predefined,
		})
		if err != nil {
			return err
		}

		cfg := appInstance.Config
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		info, err := client.Enqueue(task)
		if err != nil {
			return fmt.Errorf("failed to enqueue categorize job: %w", err)
		}
		fmt.Printf("Enqueued job %s on queue %q\n", info.ID, info.Queue)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to the CSV/TSV file (required)")
	batchCmd.Flags().StringVarP(&batchColumn, "column", "c", "", "Name of the column to categorize (required)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write an annotated copy of the file to this path")
	batchCmd.Flags().String("categories", "", "Comma-separated list of preferred category names")
	batchCmd.Flags().IntVar(&batchMaxCategories, "max-categories", 0, "Cap on distinct categories across the run (0 = no cap)")
	batchCmd.MarkFlagRequired("file")
	batchCmd.MarkFlagRequired("column")
}
