package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statnett/cimsparql"
	"github.com/statnett/cimsparql/pkg/config"
	"github.com/statnett/cimsparql/pkg/sparql"
	"github.com/statnett/cimsparql/pkg/telemetry"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "cimsparql",
		Short: "cimsparql: typed tables from CIM models in SPARQL stores",
		Long: `cimsparql composes SPARQL queries against CIM power grid models and
returns the results as typed tables. It discovers namespace bindings and
attribute datatypes from the connected store, so the same query catalog
works across model versions.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cimsparql.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("server", "", "SPARQL server, host:port")
	rootCmd.PersistentFlags().String("repo", "", "repository holding topology and state profiles")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("store.server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("store.repo", rootCmd.PersistentFlags().Lookup("repo"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".cimsparql" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cimsparql")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from the log section.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	if cfg.Telemetry.ParquetPath != "" {
		ph, err := telemetry.NewParquetHandler(handler, cfg.Telemetry.ParquetPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: telemetry disabled:", err)
		} else {
			handler = ph
		}
	}
	return slog.New(handler)
}

// connectModel builds a client from the store section and connects a model.
func connectModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cimsparql.Model, error) {
	client := sparql.NewClient(cfg.ServiceConfig(),
		sparql.WithLogger(logger),
		sparql.WithRetry(cfg.RetryConfig()),
	)
	return cimsparql.Connect(ctx, client, cimsparql.ModelConfig{
		Region:         cfg.Model.Region,
		Rate:           cfg.Model.Rate,
		EquipmentGraph: cfg.Equipment.Graph,
		ShortenIRIs:    cfg.Model.ShortenIRIs,
	}, logger)
}
