package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Source   SourceConfig
	Output   OutputConfig
	Grouping GroupingConfig
	Server   ServerConfig
	Cache    CacheConfig
}

// SourceConfig holds Snapklik retrieval configuration
type SourceConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	SearchTerm   string        `mapstructure:"search_term"`
	MaxPages     int           `mapstructure:"max_pages"`
	PageDelay    time.Duration `mapstructure:"page_delay"`
	SnapshotPath string        `mapstructure:"snapshot_path"`
}

// OutputConfig holds output table paths. WorkbookPath is optional; when
// empty no XLSX workbook is written.
type OutputConfig struct {
	ProductsPath string `mapstructure:"products_path"`
	GroupedPath  string `mapstructure:"grouped_path"`
	WorkbookPath string `mapstructure:"workbook_path"`
}

// GroupingConfig holds ingredient grouping configuration
type GroupingConfig struct {
	TopN  int  `mapstructure:"top_n"`
	Debug bool `mapstructure:"debug"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig holds catalog cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable settings
	v.SetEnvPrefix("SKINSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("source.base_url", "https://sk-backend-xxhrslt5oq-uc.a.run.app")
	v.SetDefault("source.search_term", "skin care")
	v.SetDefault("source.max_pages", 50)
	v.SetDefault("source.page_delay", "1s")
	v.SetDefault("source.snapshot_path", "debug.html")

	// Output defaults
	v.SetDefault("output.products_path", "snapklik_products.csv")
	v.SetDefault("output.grouped_path", "grouped_skincare_products.csv")
	v.SetDefault("output.workbook_path", "")

	// Grouping defaults
	v.SetDefault("grouping.top_n", 3)
	v.SetDefault("grouping.debug", false)

	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Source.BaseURL == "" {
		return fmt.Errorf("source base URL is required (set SKINSIFT_SOURCE_BASE_URL)")
	}

	if config.Source.MaxPages <= 0 {
		return fmt.Errorf("source max pages must be positive, got: %d", config.Source.MaxPages)
	}

	if config.Source.PageDelay < 0 {
		return fmt.Errorf("source page delay must not be negative, got: %s", config.Source.PageDelay)
	}

	if config.Grouping.TopN <= 0 {
		return fmt.Errorf("grouping top_n must be positive, got: %d", config.Grouping.TopN)
	}

	if config.Output.ProductsPath == "" || config.Output.GroupedPath == "" {
		return fmt.Errorf("output paths must not be empty")
	}

	return nil
}
