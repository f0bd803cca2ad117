package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/navstash/internal/app"
	"github.com/MrSnakeDoc/navstash/internal/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(_ *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		return err
	}
	return a.Run()
}
