// Package doctor runs environment diagnostics for huh.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appconfig "github.com/doeshing/huh-go/internal/application/config"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

// APIKeyResolver returns the credential that would be used for model.
type APIKeyResolver func(model domain.ModelDefinition) string

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	PaneCapturer    ports.PaneCapturer
	HistoryReader   ports.ShellHistoryReader
	ShellIntegrator ports.ShellIntegrator
	SecurityService ports.SecurityService
	Clipboard       ports.Clipboard
	ResolveAPIKey   APIKeyResolver
}

// Run executes checks and returns a report. The error is non-nil only when
// configuration cannot be loaded, since no other check is meaningful then.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format v%s, %d models", cfg.ConfigFormatVersion, len(cfg.Models))))
	}

	checks = append(checks, s.tmuxCheck(ctx))
	shell, shellCheck := s.shellCheck(ctx)
	checks = append(checks, shellCheck)
	checks = append(checks, s.historyCheck(ctx))
	if s.ShellIntegrator != nil && shell.Supported() {
		checks = append(checks, s.integrationCheck(shell))
	}
	checks = append(checks, s.apiKeyCheck(cfg))
	checks = append(checks, s.guardrailCheck(cfg))
	checks = append(checks, s.clipboardCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) tmuxCheck(ctx context.Context) domain.HealthCheck {
	if s.PaneCapturer == nil {
		return warn("tmux", "pane capture not configured")
	}
	pane, err := s.PaneCapturer.CapturePane(ctx)
	switch {
	case errors.Is(err, domain.ErrNoMultiplexerSession):
		return fail("tmux", "not inside a tmux session; analysis of the last command needs tmux")
	case err != nil:
		return fail("tmux", err.Error())
	}
	return ok("tmux", fmt.Sprintf("captured %d lines from %s", strings.Count(pane.Raw, "\n")+1, pane.Source))
}

func (s *Service) shellCheck(ctx context.Context) (domain.ShellKind, domain.HealthCheck) {
	if s.HistoryReader == nil {
		return domain.ShellUnknown, warn("Shell", "history reader not configured")
	}
	shell := s.HistoryReader.DetectShell(ctx)
	if !shell.Supported() {
		return shell, warn("Shell", "could not detect a supported shell (bash, zsh, fish); set context.default_shell")
	}
	return shell, ok("Shell", string(shell))
}

func (s *Service) historyCheck(ctx context.Context) domain.HealthCheck {
	if s.HistoryReader == nil {
		return warn("Shell history", "history reader not configured")
	}
	entries, err := s.HistoryReader.ReadHistory(ctx, 1)
	if err != nil {
		return warn("Shell history", err.Error())
	}
	if len(entries) == 0 {
		return warn("Shell history", "no commands found")
	}
	return ok("Shell history", "last command: "+entries[len(entries)-1].Command)
}

func (s *Service) integrationCheck(shell domain.ShellKind) domain.HealthCheck {
	status := s.ShellIntegrator.Status(shell)
	switch {
	case status.Error != "":
		return warn("Shell hook", status.Error)
	case status.ScriptExists && status.LinePresent:
		return ok("Shell hook", fmt.Sprintf("%s hook sourced from %s", shell, status.RCFile))
	default:
		return warn("Shell hook", "not installed; run `huh install` so new commands reach the history file immediately")
	}
}

func (s *Service) apiKeyCheck(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return fail("API key", err.Error())
	}
	if !model.Kind().NeedsAPIKey() {
		return ok("API key", fmt.Sprintf("%s needs no key", model.Name))
	}
	if s.ResolveAPIKey == nil || s.ResolveAPIKey(model) == "" {
		return fail("API key", fmt.Sprintf("%s missing for %s", model.APIKeyEnvVar(), model.Name))
	}
	return ok("API key", fmt.Sprintf("%s set for %s", model.APIKeyEnvVar(), model.Name))
}

func (s *Service) guardrailCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.Security.Enabled {
		return warn("Guardrail", "disabled in config")
	}
	if s.SecurityService == nil {
		return warn("Guardrail", "security service not initialized")
	}
	assessment, err := s.SecurityService.Evaluate("rm -rf /")
	if err != nil {
		return fail("Guardrail", err.Error())
	}
	if !assessment.Risky() {
		return warn("Guardrail", "rules loaded but do not flag `rm -rf /`")
	}
	return ok("Guardrail", "rules loaded")
}

func (s *Service) clipboardCheck() domain.HealthCheck {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		return warn("Clipboard", "unavailable; --copy will be ignored")
	}
	return ok("Clipboard", "available")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
