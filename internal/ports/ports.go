// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The application depends on these abstractions, and
// the concrete tmux, filesystem, HTTP and CLI implementations live under
// internal/infrastructure.
package ports

import (
	"context"

	"github.com/doeshing/huh-go/internal/domain"
)

// ConfigProvider loads and persists configuration.
// Implementations typically read from ~/.huh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
	Save(context.Context, domain.Config) error
}

// PaneCapturer reads the current terminal multiplexer pane.
// Implementations fail with domain.ErrNoMultiplexerSession outside a session.
type PaneCapturer interface {
	CapturePane(ctx context.Context) (domain.CapturedPane, error)
}

// ShellHistoryReader returns at most limit recent history entries, oldest first.
type ShellHistoryReader interface {
	ReadHistory(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	DetectShell(ctx context.Context) domain.ShellKind
}

// ProviderFactory builds completion providers based on model definitions.
type ProviderFactory interface {
	ForModel(model domain.ModelDefinition, apiKey string) (Provider, error)
}

// Provider sends one completion request to a language-model service.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Complete(context.Context, domain.CompletionRequest) (domain.CompletionResponse, error)
}

// FileEditor applies a diff to a file with concurrent-modification detection.
type FileEditor interface {
	ReadFile(path string) (content string, exists bool, err error)
	ApplyEdit(path string, diff domain.Diff) error
}

// SecurityService evaluates suggested commands against guardrail rules.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// InvocationStore persists the local invocation log.
type InvocationStore interface {
	Save(domain.InvocationRecord) error
	Records(limit int) ([]domain.InvocationRecord, error)
	Clear() error
	Prune(olderThanDays int) (int, error)
}

// CacheRepository caches completion text per prompt key.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Clear() error
}

// ConfirmationPrompter asks the user before a file is overwritten.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Clipboard provides cross-platform clipboard integration for suggested commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// ShellIntegrator manages the history-flush hook in shell startup files.
type ShellIntegrator interface {
	Install(shell domain.ShellKind, force bool) (domain.ShellInstallResult, error)
	Uninstall(shell domain.ShellKind) (domain.ShellInstallResult, error)
	Status(shell domain.ShellKind) domain.ShellStatus
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
