package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals() {
	cfg = nil
	v = nil
	fileLoaded = false
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
search:
  heuristic: admissible
  reopen_on_cheaper: true
  max_expansions: 500
render:
  ansi: false
server:
  grpc_server:
    port: 8080
    cache_ttl_seconds: 60
mapgen:
  blue_count: 4
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, "admissible", c.Search.Heuristic)
	assert.True(t, c.Search.ReopenOnCheaper)
	assert.Equal(t, 500, c.Search.MaxExpansions)
	assert.False(t, c.Render.ANSI)
	assert.Equal(t, 8080, c.Server.GRPCServer.Port)
	assert.Equal(t, 60, c.Server.GRPCServer.CacheTTLSeconds)
	assert.Equal(t, 4, c.MapGen.BlueCount)

	// untouched keys keep their defaults
	assert.True(t, c.Render.ShowBoard)
	assert.Equal(t, 1024, c.Server.GRPCServer.CacheSize)
	assert.Equal(t, 45, c.MapGen.LilyPadPercent)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, "rows", c.Search.Heuristic)
	assert.False(t, c.Search.ReopenOnCheaper)
	assert.Equal(t, 0, c.Search.MaxExpansions)
	assert.False(t, c.Search.EmitEvents)
	assert.Equal(t, "0.0.0.0", c.Server.GRPCServer.Host)
	assert.Equal(t, 50051, c.Server.GRPCServer.Port)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
}

func TestInitRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("search:\n  heuristic: manhattan\n"), 0644))

	resetGlobals()
	err := Init(configFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.heuristic")
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals()

	t.Setenv("FRK_SEARCH_MAX_EXPANSIONS", "77")
	t.Setenv("FRK_SERVER_GRPC_SERVER_PORT", "9090")
	t.Setenv("FRK_SEARCH_HEURISTIC", "admissible")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 77, c.Search.MaxExpansions)
	assert.Equal(t, 9090, c.Server.GRPCServer.Port)
	assert.Equal(t, "admissible", c.Search.Heuristic)
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))

	require.NoError(t, Set("search.max_expansions", 35))
	require.NoError(t, Set("render.show_board", false))

	c := Get()
	assert.Equal(t, 35, c.Search.MaxExpansions)
	assert.False(t, c.Render.ShowBoard)
}

func TestSetRejectsInvalidValue(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))
	require.NoError(t, Set("search.heuristic", "admissible"))

	err := Set("search.heuristic", "manhattan")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.heuristic")
	assert.Equal(t, "admissible", Get().Search.Heuristic)

	// the rejected value must not leak into a later update
	require.NoError(t, Set("search.max_expansions", 9))
	assert.Equal(t, "admissible", Get().Search.Heuristic)
}

func TestInitRejectsMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("search:\n  heuristic: [admissible\n"), 0644))

	resetGlobals()
	err := Init(configFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfigFilePath(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init("/non/existent/path/config.yaml"))
	assert.Empty(t, ConfigFilePath(), "defaults only")

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("render:\n  ansi: false\n"), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
search:
  max_expansions: 100
server:
  grpc_server:
    port: 50051
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
search:
  max_expansions: 2000
server:
  grpc_server:
    port: 8080
    log_level: "error"
`
	require.NoError(t, os.WriteFile(envConfig, []byte(envContent), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	resetGlobals()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 2000, c.Search.MaxExpansions)
	assert.Equal(t, 8080, c.Server.GRPCServer.Port)
	assert.Equal(t, "error", c.Server.GRPCServer.LogLevel)

	// a missing overlay is not an error
	assert.NoError(t, LoadEnvironmentConfig("staging"))
	assert.NoError(t, LoadEnvironmentConfig(""))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		resetGlobals()
		require.NoError(t, Init(""))
		c := *Get()
		return &c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"Defaults", func(*Config) {}, ""},
		{"NegativeExpansions", func(c *Config) { c.Search.MaxExpansions = -1 }, "search.max_expansions"},
		{"PortTooLarge", func(c *Config) { c.Server.GRPCServer.Port = 70000 }, "server.grpc_server.port"},
		{"NegativeCacheTTL", func(c *Config) { c.Server.GRPCServer.CacheTTLSeconds = -5 }, "cache_ttl_seconds"},
		{"UnknownLogFormat", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"LilyPadPercent", func(c *Config) { c.MapGen.LilyPadPercent = 101 }, "mapgen.lily_pad_percent"},
		{"RedRowOffBoard", func(c *Config) { c.MapGen.RedMaxRow = 8 }, "mapgen.red_max_row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := Validate(c)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWatchConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("search:\n  max_expansions: 10\n"), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	changed := make(chan error, 4)
	WatchConfig(func(_ fsnotify.Event, err error) {
		select {
		case changed <- err:
		default:
		}
	})

	require.NoError(t, os.WriteFile(configFile, []byte("search:\n  max_expansions: 20\n"), 0644))

	// editors and os.WriteFile may fire more than one event per save
	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-changed:
			require.NoError(t, err)
			if Get().Search.MaxExpansions == 20 {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
