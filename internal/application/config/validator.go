// Package config validates user configuration beyond what YAML decoding checks.
package config

import (
	"errors"
	"fmt"

	"github.com/doeshing/huh-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validateModels(cfg.Models); err != nil {
		return err
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateContext(cfg.Context); err != nil {
		return err
	}
	if err := validateDisplay(cfg.Display); err != nil {
		return err
	}
	if err := validateSecurity(cfg.Security); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	return validateHistory(cfg.History)
}

func validateModels(models []domain.ModelDefinition) error {
	seen := make(map[string]bool, len(models))
	for _, model := range models {
		if model.Name == "" {
			return errors.New("models: every model needs a name")
		}
		if seen[model.Name] {
			return fmt.Errorf("models: duplicate model name %s", model.Name)
		}
		seen[model.Name] = true
		switch model.Kind() {
		case domain.ProviderGemini, domain.ProviderAnthropic, domain.ProviderOpenAI, domain.ProviderOllama:
		default:
			return fmt.Errorf("models: %s has unknown provider %q", model.Name, model.Provider)
		}
		if model.MaxTokens < 0 {
			return fmt.Errorf("models: %s max_tokens must be >= 0", model.Name)
		}
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.ResponseLength != "" && !prefs.ResponseLength.Valid() {
		return fmt.Errorf("preferences.response_length must be one of brief|balanced|detailed|verbose, got %s", prefs.ResponseLength)
	}
	if prefs.Temperature < 0 || prefs.Temperature > 2 {
		return fmt.Errorf("preferences.temperature must be between 0 and 2, got %g", prefs.Temperature)
	}
	if prefs.TimeoutSeconds < 0 {
		return errors.New("preferences.api_timeout must be >= 0")
	}
	if prefs.MaxOutputTokens < 0 {
		return errors.New("preferences.max_output_tokens must be >= 0")
	}
	return nil
}

func validateContext(ctx domain.ContextSettings) error {
	if ctx.Scrollback < 0 {
		return errors.New("context.scrollback must be >= 0")
	}
	if ctx.MaxChars < 0 {
		return errors.New("context.max_chars must be >= 0")
	}
	if ctx.PaneLines < 0 {
		return errors.New("context.pane_lines must be >= 0")
	}
	return nil
}

func validateDisplay(display domain.DisplaySettings) error {
	if display.MaxLineWidth < 0 || display.DiffPreviewLines < 0 {
		return errors.New("display.max_line_width and display.diff_preview_lines must be >= 0")
	}
	return nil
}

func validateSecurity(sec domain.SecuritySettings) error {
	if sec.Enabled && sec.RulesFile == "" {
		return fmt.Errorf("security.rules_file must be set when security is enabled")
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	if cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes must be >= 0")
	}
	if cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}
