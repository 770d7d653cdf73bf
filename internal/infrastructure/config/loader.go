package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// skipNextReload is set by Save so the watcher does not re-read a file we just wrote.
	skipNextReload bool
}

// NewManager creates a configuration manager reading config.toml from the
// XDG config directory, then the working directory. Environment variables
// prefixed with VOYAGE_ override file values (VOYAGE_SEARCH_ENGINE, ...).
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("VOYAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same names logging.NewFromEnv reads before the config is loaded.
	if err := v.BindEnv("logging.level", "VOYAGE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind VOYAGE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "VOYAGE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind VOYAGE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the configuration file, creating a default one on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.reload(false)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf("failed to create default config at %s: %w", configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// reload unmarshals, normalizes and validates the viper state into m.config.
// Must be called with m.mu held for write.
func (m *Manager) reload(reread bool) error {
	if reread {
		if err := m.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(), err,
		)
	}
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	config.Windows.NewWindowContent = strings.ToLower(strings.TrimSpace(config.Windows.NewWindowContent))
	config.Search.Engine = strings.TrimSpace(config.Search.Engine)
	config.Search.SuggestURL = strings.TrimSpace(config.Search.SuggestURL)

	for i, name := range config.Suggestions.Priority {
		config.Suggestions.Priority[i] = strings.ToLower(strings.TrimSpace(name))
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.clone()
}

func (c *Config) clone() *Config {
	out := *c
	out.Suggestions.Priority = append([]string(nil), c.Suggestions.Priority...)
	if c.Search.Shortcuts != nil {
		out.Search.Shortcuts = make(map[string]string, len(c.Search.Shortcuts))
		for k, v := range c.Search.Shortcuts {
			out.Search.Shortcuts[k] = v
		}
	}
	return &out
}

// Save validates cfg and writes it to the active config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	cfg = cfg.clone()
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	path := m.viper.ConfigFileUsed()
	if path == "" {
		var err error
		if path, err = GetConfigFile(); err != nil {
			return err
		}
	}
	if err := WriteConfigOrdered(cfg, path); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to re-read saved config: %w", err)
	}
	m.config = cfg
	return nil
}

// GetConfigFile returns the path of the configuration file in use.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	if _, err := WriteSchemaFile(); err != nil {
		return err
	}
	return nil
}

// setDefaults registers every default with viper so env overrides and partial
// files resolve against them.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("search.engine", defaults.Search.Engine)
	m.viper.SetDefault("search.suggest_url", defaults.Search.SuggestURL)
	m.viper.SetDefault("search.suggest_timeout_ms", defaults.Search.SuggestTimeoutMs)
	m.viper.SetDefault("search.suggest_rate_per_second", defaults.Search.SuggestRatePerSecond)
	m.viper.SetDefault("search.shortcuts", defaults.Search.Shortcuts)

	m.viper.SetDefault("suggestions.debounce_ms", defaults.Suggestions.DebounceMs)
	m.viper.SetDefault("suggestions.tab_cap", defaults.Suggestions.TabCap)
	m.viper.SetDefault("suggestions.history_cap", defaults.Suggestions.HistoryCap)
	m.viper.SetDefault("suggestions.bookmark_cap", defaults.Suggestions.BookmarkCap)
	m.viper.SetDefault("suggestions.remote_cap", defaults.Suggestions.RemoteCap)
	m.viper.SetDefault("suggestions.priority", defaults.Suggestions.Priority)

	m.viper.SetDefault("windows.new_window_content", defaults.Windows.NewWindowContent)
	m.viper.SetDefault("windows.homepage", defaults.Windows.Homepage)
	m.viper.SetDefault("windows.close_delay_ms", defaults.Windows.CloseDelayMs)
	m.viper.SetDefault("windows.default_width", defaults.Windows.DefaultWidth)
	m.viper.SetDefault("windows.default_height", defaults.Windows.DefaultHeight)
	m.viper.SetDefault("windows.drop_offset_x", defaults.Windows.DropOffsetX)
	m.viper.SetDefault("windows.drop_offset_y", defaults.Windows.DropOffsetY)

	m.viper.SetDefault("tabs.closed_tab_capacity", defaults.Tabs.ClosedTabCapacity)
	m.viper.SetDefault("tabs.restore_session", defaults.Tabs.RestoreSession)
}
