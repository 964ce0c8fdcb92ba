package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	Render  RenderConfig  `mapstructure:"render"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	MapGen  MapGenConfig  `mapstructure:"mapgen"`
}

// SearchConfig holds path search settings
type SearchConfig struct {
	Heuristic       string `mapstructure:"heuristic"`
	ReopenOnCheaper bool   `mapstructure:"reopen_on_cheaper"`
	MaxExpansions   int    `mapstructure:"max_expansions"`
	EmitEvents      bool   `mapstructure:"emit_events"`
}

// RenderConfig holds terminal output settings
type RenderConfig struct {
	ANSI      bool `mapstructure:"ansi"`
	ShowBoard bool `mapstructure:"show_board"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	CacheSize             int    `mapstructure:"cache_size"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds"`
}

// LoggingConfig holds logger settings for the command line tools
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MapGenConfig holds random board settings
type MapGenConfig struct {
	LilyPadPercent int  `mapstructure:"lily_pad_percent"`
	BlueCount      int  `mapstructure:"blue_count"`
	RedMaxRow      int  `mapstructure:"red_max_row"`
	Sparse         bool `mapstructure:"sparse"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// fileLoaded is false when Init fell back to defaults
	fileLoaded bool
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Search defaults
	v.SetDefault("search.heuristic", "rows")
	v.SetDefault("search.reopen_on_cheaper", false)
	v.SetDefault("search.max_expansions", 0)
	v.SetDefault("search.emit_events", false)

	// Render defaults
	v.SetDefault("render.ansi", true)
	v.SetDefault("render.show_board", true)

	// gRPC server defaults
	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50051)
	v.SetDefault("server.grpc_server.log_level", "info")
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)
	v.SetDefault("server.grpc_server.cache_size", 1024)
	v.SetDefault("server.grpc_server.cache_ttl_seconds", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Random board defaults
	v.SetDefault("mapgen.lily_pad_percent", 45)
	v.SetDefault("mapgen.blue_count", 10)
	v.SetDefault("mapgen.red_max_row", 2)
	v.SetDefault("mapgen.sparse", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	fileLoaded = false

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/freckers")
	}

	v.SetEnvPrefix("FRK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath == "" && errors.As(err, &notFound):
			// no config file anywhere: defaults only
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
			// a named file that does not exist falls back to defaults too
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fileLoaded = true
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set overrides a single key at runtime. The value is rejected, and the
// previous one restored, if the resulting config does not decode or validate.
func Set(key string, value interface{}) error {
	prev := v.Get(key)
	v.Set(key, value)

	next := &Config{}
	err := v.Unmarshal(next)
	if err == nil {
		err = Validate(next)
	}
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("config %s: %w", key, err)
	}

	*cfg = *next
	return nil
}

// ConfigFilePath returns the path of the loaded config file, or "" when
// running on defaults
func ConfigFilePath() string {
	if v == nil || !fileLoaded {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// fsnotify event and the reload error, if the new file failed to decode or
// validate; in that case the previous config stays in place.
func WatchConfig(onChange func(fsnotify.Event, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(e, err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch c.Search.Heuristic {
	case "rows", "admissible":
	default:
		return fmt.Errorf("search.heuristic must be \"rows\" or \"admissible\", got %q", c.Search.Heuristic)
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("search.max_expansions must be non-negative")
	}

	if c.Server.GRPCServer.Port <= 0 || c.Server.GRPCServer.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if c.Server.GRPCServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.GRPCServer.CacheSize < 0 {
		return fmt.Errorf("server.grpc_server.cache_size must be non-negative")
	}
	if c.Server.GRPCServer.CacheTTLSeconds < 0 {
		return fmt.Errorf("server.grpc_server.cache_ttl_seconds must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}

	if c.MapGen.LilyPadPercent < 0 || c.MapGen.LilyPadPercent > 100 {
		return fmt.Errorf("mapgen.lily_pad_percent must be between 0 and 100")
	}
	if c.MapGen.BlueCount < 0 {
		return fmt.Errorf("mapgen.blue_count must be non-negative")
	}
	if c.MapGen.RedMaxRow < 0 || c.MapGen.RedMaxRow >= 8 {
		return fmt.Errorf("mapgen.red_max_row must be between 0 and 7")
	}

	return nil
}
