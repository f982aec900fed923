package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ProviderConfig configures the Yahoo Finance fundamentals fetch.
type ProviderConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	CacheTTL  time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheSize int           `yaml:"cache_size" mapstructure:"cache_size"`
	CacheDir  string        `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// SearchConfig configures symbol lookup.
type SearchConfig struct {
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int     `yaml:"max_results" mapstructure:"max_results"`
	Rate       float64 `yaml:"rate" mapstructure:"rate"`
	Burst      int     `yaml:"burst" mapstructure:"burst"`
	Retries    int     `yaml:"retries" mapstructure:"retries"`
	// Filter restricts candidates by exchange or quote type, e.g. "EQUITY".
	Filter string `yaml:"filter" mapstructure:"filter"`
}

// OutputConfig configures presentation.
type OutputConfig struct {
	Format      string   `yaml:"format" mapstructure:"format"`
	Lang        string   `yaml:"lang" mapstructure:"lang"`
	Color       bool     `yaml:"color" mapstructure:"color"`
	MaxColWidth int      `yaml:"max_col_width" mapstructure:"max_col_width"`
	Columns     []string `yaml:"columns" mapstructure:"columns"`
}

// ServerConfig configures the web surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	DefaultQuery   string   `yaml:"default_query" mapstructure:"default_query"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path looks
// for fscore.yaml in the working directory; a missing file is not an error
// unless path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fscore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.cache_ttl", 15*time.Minute)
	v.SetDefault("provider.cache_size", 256)
	v.SetDefault("provider.cache_dir", "")
	v.SetDefault("search.base_url", "https://query2.finance.yahoo.com/v1/finance/search")
	v.SetDefault("search.max_results", 8)
	v.SetDefault("search.rate", 2.0)
	v.SetDefault("search.burst", 2)
	v.SetDefault("search.retries", 3)
	v.SetDefault("search.filter", "")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.lang", "en")
	v.SetDefault("output.color", true)
	v.SetDefault("output.max_col_width", 40)
	v.SetDefault("output.columns", []string{})
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.default_query", "Apple")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)
	// keep stdout free for rendered output
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
