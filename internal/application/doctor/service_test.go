package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }
func (s stubConfig) Save(context.Context, domain.Config) error   { return nil }

type stubPane struct{ err error }

func (s stubPane) CapturePane(context.Context) (domain.CapturedPane, error) {
	if s.err != nil {
		return domain.CapturedPane{}, s.err
	}
	return domain.CapturedPane{Raw: "$ make\nerror", Source: "tmux:%1"}, nil
}

type stubHistory struct {
	shell domain.ShellKind
	err   error
}

func (s stubHistory) ReadHistory(context.Context, int) ([]domain.HistoryEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.HistoryEntry{{Command: "make"}}, nil
}

func (s stubHistory) DetectShell(context.Context) domain.ShellKind { return s.shell }

type stubSecurity struct{}

func (stubSecurity) Evaluate(string) (domain.RiskAssessment, error) {
	return domain.RiskAssessment{Level: domain.RiskCritical, Action: domain.ActionBlock}, nil
}

func testConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultModel: "gemini"},
		Models:              []domain.ModelDefinition{{Name: "gemini", Provider: domain.ProviderGemini}},
		Security:            domain.SecuritySettings{Enabled: true, RulesFile: "rules.yaml"},
	}
}

func statusOf(report domain.HealthReport, name string) domain.HealthStatus {
	for _, check := range report.Checks {
		if check.Name == name {
			return check.Status
		}
	}
	return ""
}

func TestDoctorHealthyEnvironment(t *testing.T) {
	svc := &Service{
		ConfigProvider:  stubConfig{cfg: testConfig()},
		PaneCapturer:    stubPane{},
		HistoryReader:   stubHistory{shell: domain.ShellZsh},
		SecurityService: stubSecurity{},
		ResolveAPIKey:   func(domain.ModelDefinition) string { return "key" },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Equal(t, domain.HealthOK, statusOf(report, "tmux"))
	assert.Equal(t, domain.HealthOK, statusOf(report, "Shell"))
	assert.Equal(t, domain.HealthOK, statusOf(report, "API key"))
	assert.Equal(t, domain.HealthOK, statusOf(report, "Guardrail"))
	assert.Equal(t, domain.HealthWarn, statusOf(report, "Clipboard"))
}

func TestDoctorReportsProblems(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: testConfig()},
		PaneCapturer:   stubPane{err: &domain.CaptureError{Source: "tmux", Err: domain.ErrNoMultiplexerSession}},
		HistoryReader:  stubHistory{shell: domain.ShellUnknown, err: domain.ErrUnsupportedShell},
		ResolveAPIKey:  func(domain.ModelDefinition) string { return "" },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Failed())
	assert.Equal(t, domain.HealthError, statusOf(report, "tmux"))
	assert.Equal(t, domain.HealthWarn, statusOf(report, "Shell"))
	assert.Equal(t, domain.HealthWarn, statusOf(report, "Shell history"))
	assert.Equal(t, domain.HealthError, statusOf(report, "API key"))
	assert.Equal(t, domain.HealthWarn, statusOf(report, "Guardrail"))
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("bad yaml")}}

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}
