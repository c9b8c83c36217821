package cmd

import (
	"context"
	"fmt"
	"os"

	"colcat/internal/app"
	"colcat/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "colcat",
	Short: "Categorize a column of tabular data with an LLM",
	Long: `colcat reads a CSV or TSV file, deduplicates the values of one column,
and assigns each unique value a short category label using a configured
LLM classification provider.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// columns only parses the file locally, no provider or store needed.
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "columns" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appInstance, err := GetAppFromContext(cmd.Context()); err == nil {
			appInstance.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// contextKey avoids collisions with other context values.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check history database connectivity and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Checking history database connectivity...")
		if err := appInstance.RunStore.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("history database ping failed: %w", err)
		}
		fmt.Println("History database connection successful.")

		fmt.Printf("Provider: %s, model: %s, chunk size: %d\n",
			appInstance.Config.Categorization.Provider,
			appInstance.Config.Categorization.Model,
			appInstance.Config.Categorization.ChunkSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
