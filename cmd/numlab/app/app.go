// Package app carries the state shared by numlab subcommands.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/your-org/numlab/internal/config"
	"github.com/your-org/numlab/internal/logging"
	"github.com/your-org/numlab/internal/monitoring"
)

// ConfigName is the base name of the config file searched in $HOME and the
// working directory.
const ConfigName = ".numlab"

// Env is populated by the root command before any subcommand runs.
type Env struct {
	Viper   *viper.Viper
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *monitoring.MetricsCollector
}

// New returns an Env with an empty viper instance and a discarding logger.
func New() *Env {
	return &Env{
		Viper:   viper.New(),
		Logger:  logging.Discard(),
		Metrics: monitoring.NewMetricsCollector(),
	}
}

// Init loads .env, the config file and environment overrides, then builds
// the logger. An explicit cfgFile must exist; the default search location
// may be empty.
func (e *Env) Init(cfgFile string, stderr io.Writer) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := e.loadConfig(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		return err
	}

	e.Config = cfg
	e.Logger = logger

	if used := e.Viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	return nil
}

func (e *Env) loadConfig(cfgFile string) (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(e.Viper, cfgFile)
	}

	if home, err := os.UserHomeDir(); err == nil {
		e.Viper.AddConfigPath(home)
	}
	e.Viper.AddConfigPath(".")
	e.Viper.SetConfigName(ConfigName)
	e.Viper.SetConfigType("yaml")

	if err := e.Viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return config.FromViper(e.Viper)
}

// OutputFormat returns flagValue when set, otherwise the configured format.
func (e *Env) OutputFormat(flagValue string) (string, error) {
	if flagValue == "" {
		return e.Config.Output.Format, nil
	}
	switch flagValue {
	case "table", "json":
		return flagValue, nil
	default:
		return "", fmt.Errorf("invalid format: %s (use table or json)", flagValue)
	}
}

// WriteStats prints the run summary to w.
func (e *Env) WriteStats(w io.Writer) error {
	return e.Metrics.GetSnapshot().WriteSummary(w)
}
