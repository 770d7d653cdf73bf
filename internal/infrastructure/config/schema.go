// Package config loads, validates, writes and watches the voyage configuration file.
package config

// Config is the complete voyage configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging" json:"logging"`
	Database    DatabaseConfig    `mapstructure:"database" toml:"database" json:"database"`
	Search      SearchConfig      `mapstructure:"search" toml:"search" json:"search"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions" toml:"suggestions" json:"suggestions"`
	Windows     WindowsConfig     `mapstructure:"windows" toml:"windows" json:"windows"`
	Tabs        TabsConfig        `mapstructure:"tabs" toml:"tabs" json:"tabs"`
}

// LoggingConfig controls log level, format and the optional rotating log file.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// EnableFileLog also writes logs to a size-rotated file under LogDir.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
}

// DatabaseConfig locates the profile database. An empty path uses the XDG data directory.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}

// SearchConfig configures the search engine and the remote suggestion endpoint.
type SearchConfig struct {
	// Engine is the search URL template; %s is replaced by the escaped query.
	Engine string `mapstructure:"engine" toml:"engine" json:"engine"`
	// SuggestURL is the suggestion endpoint template. Empty disables remote suggestions.
	SuggestURL string `mapstructure:"suggest_url" toml:"suggest_url" json:"suggest_url"`
	// SuggestTimeoutMs bounds one suggestion request.
	SuggestTimeoutMs int `mapstructure:"suggest_timeout_ms" toml:"suggest_timeout_ms" json:"suggest_timeout_ms" jsonschema:"minimum=1"`
	// SuggestRatePerSecond caps outgoing suggestion requests; 0 means unlimited.
	SuggestRatePerSecond float64 `mapstructure:"suggest_rate_per_second" toml:"suggest_rate_per_second" json:"suggest_rate_per_second" jsonschema:"minimum=0"`
	// Shortcuts maps bang keys to search templates ("gh" enables "!gh query").
	Shortcuts map[string]string `mapstructure:"shortcuts" toml:"shortcuts" json:"shortcuts"`
}

// SuggestionsConfig tunes the address field suggestion pipeline.
// Changes apply to the running browser without a restart.
type SuggestionsConfig struct {
	DebounceMs int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" jsonschema:"minimum=0"`
	// Per-category caps; 0 disables a category.
	TabCap      int `mapstructure:"tab_cap" toml:"tab_cap" json:"tab_cap" jsonschema:"minimum=0"`
	HistoryCap  int `mapstructure:"history_cap" toml:"history_cap" json:"history_cap" jsonschema:"minimum=0"`
	BookmarkCap int `mapstructure:"bookmark_cap" toml:"bookmark_cap" json:"bookmark_cap" jsonschema:"minimum=0"`
	RemoteCap   int `mapstructure:"remote_cap" toml:"remote_cap" json:"remote_cap" jsonschema:"minimum=0"`
	// Priority orders the categories. Missing categories follow in default order.
	Priority []string `mapstructure:"priority" toml:"priority" json:"priority"`
}

// WindowsConfig controls new windows and the deferred close of emptied ones.
type WindowsConfig struct {
	NewWindowContent string `mapstructure:"new_window_content" toml:"new_window_content" json:"new_window_content" jsonschema:"enum=start_page,enum=homepage,enum=blank,enum=clone_current"`
	Homepage         string `mapstructure:"homepage" toml:"homepage" json:"homepage"`
	CloseDelayMs     int    `mapstructure:"close_delay_ms" toml:"close_delay_ms" json:"close_delay_ms" jsonschema:"minimum=1"`
	DefaultWidth     int    `mapstructure:"default_width" toml:"default_width" json:"default_width" jsonschema:"minimum=200"`
	DefaultHeight    int    `mapstructure:"default_height" toml:"default_height" json:"default_height" jsonschema:"minimum=150"`
	DropOffsetX      int    `mapstructure:"drop_offset_x" toml:"drop_offset_x" json:"drop_offset_x"`
	DropOffsetY      int    `mapstructure:"drop_offset_y" toml:"drop_offset_y" json:"drop_offset_y"`
}

// TabsConfig controls closed-tab history and session restore.
type TabsConfig struct {
	ClosedTabCapacity int  `mapstructure:"closed_tab_capacity" toml:"closed_tab_capacity" json:"closed_tab_capacity" jsonschema:"minimum=0"`
	RestoreSession    bool `mapstructure:"restore_session" toml:"restore_session" json:"restore_session"`
}
