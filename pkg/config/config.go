package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/statnett/cimsparql/pkg/sparql"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Store configuration (the SPARQL endpoint holding topology and state)
	Store StoreConfig `mapstructure:"store"`

	// Equipment configuration (optional separately hosted equipment profile)
	Equipment EquipmentConfig `mapstructure:"equipment"`

	// Model configuration (query composition defaults)
	Model ModelConfig `mapstructure:"model"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// Export configuration
	Export ExportConfig `mapstructure:"export"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// StoreConfig holds the SPARQL endpoint configuration
type StoreConfig struct {
	Repo     string `mapstructure:"repo"`
	Protocol string `mapstructure:"protocol"`
	Server   string `mapstructure:"server"`
	Path     string `mapstructure:"path"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Token    string `mapstructure:"token"`
	RestAPI  string `mapstructure:"rest_api"` // RDF4J, BLAZEGRAPH, DIRECT_SPARQL_ENDPOINT
	Timeout  int    `mapstructure:"timeout"`  // in seconds
}

// EquipmentConfig holds the equipment-profile federation target
type EquipmentConfig struct {
	// Graph is the SERVICE reference for the equipment profile. Empty keeps
	// equipment patterns inline.
	Graph string `mapstructure:"graph"`
}

// ModelConfig holds query composition defaults
type ModelConfig struct {
	Region      string `mapstructure:"region"`
	Rate        string `mapstructure:"rate"`
	ShortenIRIs bool   `mapstructure:"shorten_iris"`
}

// RetryConfig holds retry configuration for store requests
type RetryConfig struct {
	MaxRetries        int     `mapstructure:"max_retries"`
	InitialDelay      int     `mapstructure:"initial_delay"` // in seconds
	MaxDelay          int     `mapstructure:"max_delay"`     // in seconds
	BackoffMultiplier float64 `mapstructure:"backoff_multiplier"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	// ParquetPath, when set, is the directory where query failures are
	// persisted as parquet files.
	ParquetPath string `mapstructure:"parquet_path"`
}

// ExportConfig holds table export configuration
type ExportConfig struct {
	Format string `mapstructure:"format"` // json, csv, parquet
	Path   string `mapstructure:"path"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// ServiceConfig converts the store section to a client configuration.
func (c *Config) ServiceConfig() sparql.ServiceConfig {
	return sparql.ServiceConfig{
		Repo:     c.Store.Repo,
		Protocol: c.Store.Protocol,
		Server:   c.Store.Server,
		Path:     c.Store.Path,
		User:     c.Store.User,
		Password: c.Store.Password,
		Token:    c.Store.Token,
		RestAPI:  sparql.RestAPI(c.Store.RestAPI),
		Timeout:  time.Duration(c.Store.Timeout) * time.Second,
	}
}

// RetryConfig converts the retry section to the client's retry policy.
func (c *Config) RetryConfig() sparql.RetryConfig {
	return sparql.RetryConfig{
		MaxRetries:        c.Retry.MaxRetries,
		InitialDelay:      time.Duration(c.Retry.InitialDelay) * time.Second,
		MaxDelay:          time.Duration(c.Retry.MaxDelay) * time.Second,
		BackoffMultiplier: c.Retry.BackoffMultiplier,
	}
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Store defaults
	viper.SetDefault("store.repo", "LATEST")
	viper.SetDefault("store.protocol", "https")
	viper.SetDefault("store.server", "127.0.0.1:7200")
	viper.SetDefault("store.rest_api", string(sparql.RestAPIRDF4J))
	viper.SetDefault("store.timeout", 60)

	// Model defaults
	viper.SetDefault("model.rate", "Normal")
	viper.SetDefault("model.shorten_iris", true)

	// Retry defaults
	viper.SetDefault("retry.max_retries", 3)
	viper.SetDefault("retry.initial_delay", 1)
	viper.SetDefault("retry.max_delay", 60)
	viper.SetDefault("retry.backoff_multiplier", 2.0)

	// Export defaults
	viper.SetDefault("export.format", "json")
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("export.path", fmt.Sprintf("%s/.cimsparql/export", home))
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	// Store settings
	if server := os.Getenv("GRAPHDB_SERVER"); server != "" {
		config.Store.Server = server
	}
	if repo := os.Getenv("GRAPHDB_REPO"); repo != "" {
		config.Store.Repo = repo
	}
	if user := os.Getenv("GRAPHDB_USER"); user != "" {
		config.Store.User = user
	}
	if pass := os.Getenv("GRAPHDB_USER_PASSWD"); pass != "" {
		config.Store.Password = pass
	}
	if token := os.Getenv("GRAPHDB_TOKEN"); token != "" {
		config.Store.Token = token
	}
	if api := os.Getenv("SPARQL_REST_API"); api != "" {
		config.Store.RestAPI = api
	}

	// Equipment settings
	if graph := os.Getenv("GRAPHDB_EQ_GRAPH"); graph != "" {
		config.Equipment.Graph = graph
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
	}

	// Export settings
	if path := os.Getenv("EXPORT_PATH"); path != "" {
		config.Export.Path = path
	}

	// Telemetry settings
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
