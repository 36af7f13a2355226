// Package config loads dashboard configuration from defaults, an optional
// config file and WCI_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"wcidash/internal/engine"
	"wcidash/internal/observability"
	"wcidash/internal/tabular"
)

const (
	envPrefix = "WCI"
	appName   = "wci-dashboard"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Query   QueryConfig   `mapstructure:"query"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`

	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Address returns host:port for the HTTP listener.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SourceConfig locates one table. Table names a sheet or a sqlite table.
type SourceConfig struct {
	Path  string `mapstructure:"path" validate:"required"`
	Table string `mapstructure:"table"`
}

type DataConfig struct {
	Metrics     SourceConfig `mapstructure:"metrics"`
	Nationality SourceConfig `mapstructure:"nationality"`
	Residence   SourceConfig `mapstructure:"residence"`
}

type QueryConfig struct {
	DefaultTopN int `mapstructure:"default_top_n" validate:"min=1"`
	MaxTopN     int `mapstructure:"max_top_n" validate:"gtefield=DefaultTopN"`

	// Suggestions is how many close names decorate an empty result.
	Suggestions int `mapstructure:"suggestions" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `mapstructure:"format" validate:"oneof=json console pretty"`
	Output string `mapstructure:"output" validate:"oneof=stdout stderr"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Load reads configuration. When path is empty the file "config" is
// searched in ".", "./config" and the XDG config directory; a missing file
// is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("data.metrics.path", "data/df_wci_with_respondents.csv")
	v.SetDefault("data.metrics.table", "")
	v.SetDefault("data.nationality.path", "data/accusations_nationality.csv")
	v.SetDefault("data.nationality.table", "")
	v.SetDefault("data.residence.path", "data/accusations_residence.csv")
	v.SetDefault("data.residence.table", "")

	v.SetDefault("query.default_top_n", engine.DefaultTopN)
	v.SetDefault("query.max_top_n", 50)
	v.SetDefault("query.suggestions", 3)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %v fails %q", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return err
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics path is required when metrics are enabled")
	}
	return nil
}

// Sources maps the data section onto loader sources.
func (c *Config) Sources() engine.Sources {
	return engine.Sources{
		Metrics: tabular.Source{Name: "metrics", Path: c.Data.Metrics.Path, Table: c.Data.Metrics.Table},
		Matrices: map[engine.Mode]tabular.Source{
			engine.ByNationality: {Name: engine.ByNationality.Slug(), Path: c.Data.Nationality.Path, Table: c.Data.Nationality.Table},
			engine.ByResidence:   {Name: engine.ByResidence.Slug(), Path: c.Data.Residence.Path, Table: c.Data.Residence.Table},
		},
	}
}

// LoggerConfig converts the logging section for observability.NewLogger.
func (c *Config) LoggerConfig() observability.LoggingConfig {
	lc := observability.DefaultLoggingConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Output = c.Logging.Output
	return lc
}
