package cmd

import (
	"fmt"

	"colcat/internal/apihandlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd exposes the categorization pipeline over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run colcat as an HTTP API server",
	Long: `Starts an HTTP server exposing the categorization pipeline, so other
tools can post a list of texts and receive labeled records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default()
		apiHandler := apihandlers.NewAPIHandler(appInstance)

		router.GET("/healthz", apiHandler.HealthzHandler)
		v1 := router.Group("/api/v1")
		{
			v1.POST("/categorize", apiHandler.CategorizeHandler)
		}

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Address
		}
		fmt.Printf("Listening on %s\n", addr)
		return router.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.address from config)")
}
