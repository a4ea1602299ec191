package commands

// MaxHistoryAnalysisRecords bounds how many records `history stats` reads.
const MaxHistoryAnalysisRecords = 1000

// Error messages
const (
	ErrDoctorServiceUnavailable  = "doctor service unavailable"
	ErrHistoryStoreUnavailable   = "history store unavailable"
	ErrCacheStoreUnavailable     = "cache store unavailable"
	ErrShellInstallerUnavailable = "shell installer unavailable"
	ErrInvalidRetainDays         = "--days must be > 0"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoHistoryRecorded  = "No history recorded yet."
	MsgNoCachedResponses  = "No cached responses."
)
