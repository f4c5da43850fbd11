package cli

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/campusdesk/advising-engine/api"
	"github.com/campusdesk/advising-engine/config"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the advising HTTP API",
	Long: `Start the HTTP server exposing the advising pipeline: POST /advise for
processing student questions, plus read-only knowledge base and reference
corpus endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig(serveConfigPath)
		if err != nil {
			return err
		}

		adv, kb, corpus, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		router := gin.Default()
		router.Use(api.CORSMiddleware())
		router.Use(api.RequestSizeLimitMiddleware(cfg.Server.MaxRequestBytes))
		api.SetupRoutes(router, adv, kb, corpus, cfg.Data.Analytics)

		log.Printf("Starting server on port %s...", cfg.Server.Port)
		return router.Run(":" + cfg.Server.Port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", ".", "Directory containing advising.yaml")
	rootCmd.AddCommand(serveCmd)
}
