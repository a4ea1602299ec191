package domain

// Config mirrors ~/.huh/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Context             ContextSettings   `yaml:"context"`
	Display             DisplaySettings   `yaml:"display"`
	History             HistorySettings   `yaml:"history"`
	Cache               CacheSettings     `yaml:"cache"`
	Security            SecuritySettings  `yaml:"security"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel       string         `yaml:"default_model"`
	ResponseLength     ResponseLength `yaml:"response_length"`
	Temperature        float64        `yaml:"temperature"`
	MaxOutputTokens    int            `yaml:"max_output_tokens"`
	TimeoutSeconds     int            `yaml:"api_timeout"`
	ConfirmBeforeWrite bool           `yaml:"confirm_before_write"`
}

// ContextSettings configures terminal context capture.
type ContextSettings struct {
	// Scrollback is the number of prior history entries sent with a request.
	Scrollback int `yaml:"scrollback"`
	// MaxChars bounds the rendered context window.
	MaxChars int `yaml:"max_chars"`
	// PaneLines limits how far back tmux scrollback is captured; 0 captures all of it.
	PaneLines    int    `yaml:"pane_lines"`
	DefaultShell string `yaml:"default_shell"`
}

// DisplaySettings controls how results are rendered.
type DisplaySettings struct {
	MaxLineWidth     int  `yaml:"max_line_width"`
	DiffPreviewLines int  `yaml:"diff_preview_lines"`
	Color            bool `yaml:"color"`
	Spinner          bool `yaml:"spinner"`
}

// HistorySettings configures the local invocation log.
type HistorySettings struct {
	AutoSave      bool `yaml:"auto_save"`
	RetentionDays int  `yaml:"retention_days"`
}

// CacheSettings configures the response cache.
type CacheSettings struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
	MaxEntries int  `yaml:"max_entries"`
}

// SecuritySettings defines guardrail behavior for suggested commands.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}
