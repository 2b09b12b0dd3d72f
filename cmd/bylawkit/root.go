package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/bylawkit/config"
	"github.com/reoring/bylawkit/i18n"
	"github.com/reoring/bylawkit/internal/logging"
)

// app holds state shared by subcommands once the root has loaded config.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "bylawkit",
		Short: "Validate and serve municipal ADU bylaw data",
		Long: `bylawkit checks ADU/ARU bylaw records against a fixed schema of closed
enumerations, numeric ranges and cross-field consistency rules.

Validation failures are reported all at once with the path of each field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newValidateCmd(a),
		newSchemaCmd(),
		newEnumsCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	i18n.SetLanguage(cfg.Language)
	a.cfg = cfg
	a.logger = logger
	return nil
}
