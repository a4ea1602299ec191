package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// NewFilePermissions is applied to files created by write mode (rw-r--r--)
	NewFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultAPITimeoutSeconds bounds a single completion call
	DefaultAPITimeoutSeconds = 30
	// DefaultCommandTimeout is the default timeout for helper processes (tmux, ps)
	DefaultCommandTimeout = 2 * time.Second
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultCacheTTL is how long a cached response stays valid
	DefaultCacheTTL = 10 * time.Minute
)

// Context and display limits
const (
	// DefaultScrollback is the number of prior history entries included
	DefaultScrollback = 2
	// DefaultContextMaxChars bounds the assembled context window
	DefaultContextMaxChars = 12000
	// DefaultMaxLineWidth clips rendered diff lines
	DefaultMaxLineWidth = 100
	// DefaultDiffPreviewLines is the summary highlight cap
	DefaultDiffPreviewLines = 8
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
)

// Model configuration constants
const (
	// DefaultModelName is the model selected on first run
	DefaultModelName = "gemini-2.0-flash"
	// DefaultMaxOutputTokens caps any single completion
	DefaultMaxOutputTokens = 8192
	// DefaultTemperature is the user-level sampling temperature
	DefaultTemperature = 0.7
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
