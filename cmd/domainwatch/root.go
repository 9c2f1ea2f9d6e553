package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmallek/domainwatch/internal/app"
	"github.com/jmallek/domainwatch/internal/config"
	"github.com/jmallek/domainwatch/internal/logger"
)

type contextKey string

const configKey = contextKey("config")

var dryRun bool

var rootCmd = &cobra.Command{
	Use:   "domainwatch",
	Short: "Check domain registration status and expiry",
	Long:  "A tool that queries a lookup provider for each watched domain, classifies its registration lifecycle state, and sends a Telegram alert when any domain needs attention.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cmd.Context().Value(configKey).(*config.Config)

		logInstance := logger.SetupLogger(&cfg.Logging)

		application, err := app.New(cfg, logInstance, dryRun)
		if err != nil {
			return fmt.Errorf("failed to create app: %w", err)
		}
		defer func() {
			if err := application.Close(); err != nil {
				logInstance.Warn().Err(err).Msg("Error during shutdown")
			}
		}()

		// An interrupted run still reports the domains resolved so far.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			logInstance.Info().Msgf("Received signal: %v", sig)
			cancel()
		}()

		if err := run(ctx, application); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	},
}

func run(ctx context.Context, application application) error {
	return application.Run(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "INFO", "set log level (e.g. INFO, DEBUG, WARN)")
	rootCmd.PersistentFlags().String("domains-file", "", "path to the domain list file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "render the report without sending notifications")
	_ = viper.BindPFlag("log.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("source.file", rootCmd.PersistentFlags().Lookup("domains-file"))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", err)
		os.Exit(1)
	}
}
