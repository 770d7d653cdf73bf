package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/domain/autocomplete"
)

// isolate points every XDG directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("VOYAGE_ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Chdir(root)
	return root
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 150, cfg.Suggestions.DebounceMs)
	assert.Equal(t, 3, cfg.Suggestions.TabCap)
	assert.Equal(t, 5, cfg.Suggestions.HistoryCap)
	assert.Equal(t, 5, cfg.Suggestions.BookmarkCap)
	assert.Equal(t, 5, cfg.Suggestions.RemoteCap)
	assert.Equal(t, []string{"tab", "history", "bookmark", "search"}, cfg.Suggestions.Priority)
	assert.Equal(t, 300, cfg.Windows.CloseDelayMs)
	assert.Equal(t, "start_page", cfg.Windows.NewWindowContent)
	require.NoError(t, Validate(cfg))

	kinds, err := autocomplete.ParsePriority(cfg.Suggestions.Priority)
	require.NoError(t, err)
	assert.Equal(t, autocomplete.DefaultPriority(), kinds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "engine without placeholder", mutate: func(c *Config) { c.Search.Engine = "https://x.example" }, wantErr: "search.engine"},
		{name: "suggest url without placeholder", mutate: func(c *Config) { c.Search.SuggestURL = "https://x.example" }, wantErr: "search.suggest_url"},
		{name: "shortcut without placeholder", mutate: func(c *Config) { c.Search.Shortcuts["x"] = "https://x.example" }, wantErr: "search.shortcuts.x"},
		{name: "relative engine", mutate: func(c *Config) { c.Search.Engine = "/search?q=%s" }, wantErr: "search.engine must be a valid absolute URL"},
		{name: "bad shortcut key", mutate: func(c *Config) { c.Search.Shortcuts["!x"] = "https://x.example/?q=%s" }, wantErr: "search.shortcuts.!x"},
		{name: "negative cap", mutate: func(c *Config) { c.Suggestions.RemoteCap = -1 }, wantErr: "suggestions.remote_cap"},
		{name: "unknown category", mutate: func(c *Config) { c.Suggestions.Priority = []string{"weather"} }, wantErr: "suggestions.priority"},
		{name: "repeated category", mutate: func(c *Config) { c.Suggestions.Priority = []string{"tab", "tab"} }, wantErr: "suggestions.priority"},
		{name: "unknown window policy", mutate: func(c *Config) { c.Windows.NewWindowContent = "random" }, wantErr: "windows.new_window_content"},
		{name: "zero close delay", mutate: func(c *Config) { c.Windows.CloseDelayMs = 0 }, wantErr: "windows.close_delay_ms"},
		{name: "negative ring", mutate: func(c *Config) { c.Tabs.ClosedTabCapacity = -2 }, wantErr: "tabs.closed_tab_capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("partial priority and empty suggest url are fine", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Suggestions.Priority = []string{"history"}
		cfg.Search.SuggestURL = ""
		assert.NoError(t, Validate(cfg))
	})
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	root := isolate(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", "voyage", "config.toml")
	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(root, "config", "voyage", "config.schema.json"))
	assert.Equal(t, configFile, mgr.GetConfigFile())

	cfg := mgr.Get()
	assert.Equal(t, filepath.Join(root, "data", "voyage", "voyage.db"), cfg.Database.Path)
	assert.Equal(t, DefaultConfig().Suggestions, cfg.Suggestions)
	assert.Equal(t, DefaultConfig().Search.Shortcuts, cfg.Search.Shortcuts)
}

func TestManager_LoadPartialFileAndEnv(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", "voyage")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[suggestions]
debounce_ms = 250
remote_cap = 0
priority = ["History", "tab"]

[windows]
new_window_content = "CLONE_CURRENT"
`), 0o644))
	t.Setenv("VOYAGE_LOG_LEVEL", "debug")
	t.Setenv("VOYAGE_SEARCH_ENGINE", "https://search.example/?q=%s")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, 250, cfg.Suggestions.DebounceMs)
	assert.Equal(t, 0, cfg.Suggestions.RemoteCap)
	assert.Equal(t, 3, cfg.Suggestions.TabCap, "missing keys keep defaults")
	assert.Equal(t, []string{"history", "tab"}, cfg.Suggestions.Priority)
	assert.Equal(t, "clone_current", cfg.Windows.NewWindowContent)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://search.example/?q=%s", cfg.Search.Engine)
}

func TestManager_LoadRejectsInvalidFile(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", "voyage")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[suggestions]
priority = ["weather"]
`), 0o644))

	mgr, err := NewManager()
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suggestions.priority")
}

func TestManager_GetReturnsCopy(t *testing.T) {
	isolate(t)
	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Suggestions.Priority[0] = "bookmark"
	cfg.Search.Shortcuts["gh"] = "changed"

	again := mgr.Get()
	assert.Equal(t, "tab", again.Suggestions.Priority[0])
	assert.NotEqual(t, "changed", again.Search.Shortcuts["gh"])
}

func TestManager_SaveAndWatch(t *testing.T) {
	isolate(t)
	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	changes := make(chan *Config, 8)
	mgr.OnConfigChange(func(c *Config) { changes <- c })
	require.NoError(t, mgr.Watch())

	cfg := mgr.Get()
	cfg.Suggestions.DebounceMs = 400
	require.NoError(t, mgr.Save(cfg))
	assert.Equal(t, 400, mgr.Get().Suggestions.DebounceMs)

	// An external edit is picked up by the watcher.
	edited := mgr.Get()
	edited.Suggestions.HistoryCap = 9
	require.NoError(t, WriteConfigOrdered(edited, mgr.GetConfigFile()))

	require.Eventually(t, func() bool {
		return mgr.Get().Suggestions.HistoryCap == 9
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case c := <-changes:
		assert.Equal(t, 400, c.Suggestions.DebounceMs)
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback")
	}
}

func TestManager_SaveRejectsInvalid(t *testing.T) {
	isolate(t)
	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Windows.CloseDelayMs = -1
	require.Error(t, mgr.Save(cfg))
	assert.Equal(t, 300, mgr.Get().Windows.CloseDelayMs)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, schemaID, doc["$id"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, section := range []string{"logging", "database", "search", "suggestions", "windows", "tabs"} {
		assert.Contains(t, props, section)
	}
}

func TestGetDirs_DevMode(t *testing.T) {
	root := isolate(t)
	t.Setenv("VOYAGE_ENV", "dev")

	dirs, err := GetDirs()
	require.NoError(t, err)

	want := filepath.Join(root, ".dev", "voyage")
	assert.Equal(t, want, dirs.ConfigHome)
	assert.Equal(t, want, dirs.DataHome)
}
