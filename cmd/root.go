package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dt-pm-tools/testcase-pipeline/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logger    *zap.Logger
	version   = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "testpipe",
	Short:   "Turn JIRA tickets into QMetry test cases",
	Long:    `A CLI tool that fetches a JIRA ticket, derives requirements from its description, synthesizes structured test cases, and publishes them into the QMetry (QTM4J) test-management plugin.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.testcase-pipeline.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initLogger() error {
	zapCfg := zap.NewProductionConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger = l
	return nil
}

// loadConfig loads and validates configuration. Commands that need JIRA
// access call this; publish additionally calls ValidatePublish.
func loadConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w\nRun 'testpipe config' to set up credentials", err)
	}
	appConfig = cfg
	return nil
}
