package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys double as flag names; the environment variable is the upper-case
// form with dashes replaced by underscores (run-address -> RUN_ADDRESS).
const (
	KeyRunAddress         = "run-address"
	KeyStaticDir          = "static-dir"
	KeyDatabaseURI        = "database-uri"
	KeyRabbitMQURL        = "rabbitmq-url"
	KeyStatusTickInterval = "status-tick-interval"
	KeyStatusTickBatch    = "status-tick-batch"
	KeyDemoCollections    = "demo-collections"
	KeyLogLevel           = "log-level"
	KeyLogFormat          = "log-format"
	KeyAPIURL             = "api-url"
)

type Config struct {
	RunAddress         string
	StaticDir          string
	DatabaseURI        string
	RabbitMQURL        string
	StatusTickInterval time.Duration
	StatusTickBatch    int
	DemoCollections    int
	LogLevel           string
	LogFormat          string
}

// NewViper returns a viper instance reading from the environment.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ServerFlags registers the server flags on fs and binds them to v.
func ServerFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.StringP(KeyRunAddress, "a", ":3000", "server address and port")
	fs.String(KeyStaticDir, ".", "directory served as static files (empty disables)")
	fs.StringP(KeyDatabaseURI, "d", "", "PostgreSQL URI (empty keeps state in memory)")
	fs.String(KeyRabbitMQURL, "", "RabbitMQ URL for domain events (empty disables)")
	fs.Duration(KeyStatusTickInterval, 0, "advance active orders on this interval (0 disables)")
	fs.Int(KeyStatusTickBatch, 10, "orders advanced per tick")
	fs.Int(KeyDemoCollections, 0, "number of fake collections seeded on start")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	fs.String(KeyLogFormat, "json", "log format: json or text")

	return v.BindPFlags(fs)
}

// ClientFlags registers the flags shared by the client commands. Register
// them once, on the root command.
func ClientFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyAPIURL, "http://localhost:3000", "base URL of the API")
	return v.BindPFlag(KeyAPIURL, fs.Lookup(KeyAPIURL))
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		RunAddress:         v.GetString(KeyRunAddress),
		StaticDir:          v.GetString(KeyStaticDir),
		DatabaseURI:        v.GetString(KeyDatabaseURI),
		RabbitMQURL:        v.GetString(KeyRabbitMQURL),
		StatusTickInterval: v.GetDuration(KeyStatusTickInterval),
		StatusTickBatch:    v.GetInt(KeyStatusTickBatch),
		DemoCollections:    v.GetInt(KeyDemoCollections),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFormat:          v.GetString(KeyLogFormat),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.RunAddress == "" {
		errs = append(errs, errors.New("run address is required"))
	}
	if c.StatusTickInterval < 0 {
		errs = append(errs, errors.New("status tick interval must not be negative"))
	}
	if c.StatusTickBatch <= 0 {
		errs = append(errs, errors.New("status tick batch must be positive"))
	}
	if c.DemoCollections < 0 {
		errs = append(errs, errors.New("demo collections must not be negative"))
	}
	return errors.Join(errs...)
}
