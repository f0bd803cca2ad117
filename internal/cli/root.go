// Package cli is the navstash command line: the HTTP server plus a few
// maintenance commands that work directly against the configured store.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/navstash/internal/app"
	"github.com/MrSnakeDoc/navstash/internal/config"
	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/version"
)

// NewRootCmd builds the command tree. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "navstash",
		Short:         "Bookmark and navigation backend",
		Version:       fmt.Sprintf("%s (commit=%s, built=%s)", version.Version, version.Commit, version.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.AddCommand(
		newServeCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newImportCmd(),
		newHashPasswordCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig turns the fatal configuration panics of config.Load into an
// error for commands.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("configuration: %v", r)
		}
	}()
	return config.Load(), nil
}

// openStore loads the configuration and opens the KV backend for a
// maintenance command.
func openStore() (*config.Config, logger.Logger, *app.Backend, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := newLogger(cfg)
	backend, err := app.OpenBackend(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, backend, nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		Fields: []logger.Field{
			logger.String("service", "navstash"),
			logger.String("version", version.Version),
		},
	})
}
