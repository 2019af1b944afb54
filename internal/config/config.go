package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/your-org/numlab/internal/fibonacci"
	"github.com/your-org/numlab/internal/sieve"
)

// EnvPrefix is prepended to every environment override, e.g. NUMLAB_SIEVE_MAX_LIMIT.
const EnvPrefix = "NUMLAB"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration
type Config struct {
	Sieve     SieveConfig     `mapstructure:"sieve"`
	Fibonacci FibonacciConfig `mapstructure:"fibonacci"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Output    OutputConfig    `mapstructure:"output"`
}

// SieveConfig holds prime generator settings
type SieveConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// FibonacciConfig holds fibonacci calculator settings
type FibonacciConfig struct {
	Strategy  string `mapstructure:"strategy"`
	MaxN      uint   `mapstructure:"max_n"`
	NaiveMaxN uint   `mapstructure:"naive_max_n"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig holds result rendering configuration
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Load reads the config file at path into v and decodes it. v may already
// carry flag bindings.
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return FromViper(v)
}

// FromViper applies defaults and environment overrides to v and decodes it.
func FromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	BindEnv(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SetDefaults sets default configuration values
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sieve.default_limit", 100)
	v.SetDefault("sieve.max_limit", 100_000_000)

	v.SetDefault("fibonacci.strategy", "memoized")
	v.SetDefault("fibonacci.max_n", 10_000)
	v.SetDefault("fibonacci.naive_max_n", 40)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.format", "table")
}

// BindEnv makes NUMLAB_SECTION_KEY variables override section.key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Sieve.DefaultLimit < 0 {
		return fmt.Errorf("%w: sieve.default_limit must not be negative", ErrInvalidConfig)
	}
	if c.Sieve.MaxLimit < 0 {
		return fmt.Errorf("%w: sieve.max_limit must not be negative", ErrInvalidConfig)
	}
	if c.Sieve.MaxLimit > sieve.MaxSupportedLimit {
		return fmt.Errorf("%w: sieve.max_limit must not exceed %d", ErrInvalidConfig, sieve.MaxSupportedLimit)
	}
	if c.Sieve.DefaultLimit > sieve.MaxSupportedLimit {
		return fmt.Errorf("%w: sieve.default_limit must not exceed %d", ErrInvalidConfig, sieve.MaxSupportedLimit)
	}
	if c.Sieve.MaxLimit > 0 && c.Sieve.DefaultLimit > c.Sieve.MaxLimit {
		return fmt.Errorf("%w: sieve.default_limit %d exceeds sieve.max_limit %d",
			ErrInvalidConfig, c.Sieve.DefaultLimit, c.Sieve.MaxLimit)
	}

	if _, err := fibonacci.ParseStrategy(c.Fibonacci.Strategy); err != nil {
		return fmt.Errorf("%w: fibonacci.strategy: %w", ErrInvalidConfig, err)
	}

	if c.Fibonacci.NaiveMaxN > fibonacci.MaxNaiveN {
		return fmt.Errorf("%w: fibonacci.naive_max_n must not exceed %d, F(n) overflows uint64 beyond it",
			ErrInvalidConfig, fibonacci.MaxNaiveN)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (use text or json)", ErrInvalidConfig, c.Logging.Format)
	}

	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("%w: output.format %q (use table or json)", ErrInvalidConfig, c.Output.Format)
	}

	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, level)
	}
	return l, nil
}
