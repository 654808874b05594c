// Package main provides the jobtune CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/config"
	"github.com/Haloween-arch/Jobtune/internal/logger"
)

var (
	configFile string
	verbose    bool

	appConfig *config.Config
	appLogger *zap.Logger
	appViper  = viper.New()
)

var rootCmd = &cobra.Command{
	Use:           "jobtune",
	Short:         "Resume scoring, job matching and career recommendations",
	Long:          "Jobtune scores resumes for ATS compatibility, suggests line-level fixes, matches resumes against a job dataset and recommends career paths, via CLI or REST API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setup()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default ./jobtune.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")

	_ = appViper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = appViper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

// setup loads configuration (defaults, file, JOBTUNE_* env, flags) and
// builds the logger. Logs go to stderr so stdout stays machine-readable.
func setup() error {
	config.SetDefaults(appViper)
	config.BindEnv(appViper)
	if err := config.ReadFile(appViper, configFile); err != nil {
		return err
	}

	cfg, err := config.Load(appViper)
	if err != nil {
		return err
	}

	log, err := logger.NewTo("stderr", cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg
	appLogger = log
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
