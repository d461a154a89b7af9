package main

import (
	"fmt"
	"os"

	"github.com/de-tools/malaria-atlas/pkg/runtime/app"
	"github.com/de-tools/malaria-atlas/pkg/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Malaria Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config.yaml file (defaults and MALARIA_* environment variables apply)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	a, err := app.Bootstrap(ctx, cfgPath)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	if cfgPath != "" {
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            a.Config.Server.Addr(),
		ShutdownTimeout: a.Config.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Explorer: a.Explorer,
			Charts:   a.Charts,
			News:     a.News,
			Reports:  a.Reports,
			Advisor:  a.Advisor,
			Metrics:  a.Metrics,
			Logger:   logger,
		},
	})

	return api.Start()
}
