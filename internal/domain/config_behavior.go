package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// FindModelByName searches for a model by its name
// Returns the model definition and true if found, empty model and false otherwise
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// ModelNames lists configured model names in declaration order.
func (c *Config) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for _, model := range c.Models {
		names = append(names, model.Name)
	}
	return names
}

// SetDefaultModel changes the default model to the specified name
// Returns an error if the model doesn't exist
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model: model %s does not exist", name)
	}

	c.Preferences.DefaultModel = name
	return nil
}

// ResolveModel picks the override when set, otherwise the default model.
func (c *Config) ResolveModel(override string) (ModelDefinition, error) {
	if override == "" {
		return c.GetDefaultModel()
	}
	if model, ok := c.FindModelByName(override); ok {
		return model, nil
	}
	return ModelDefinition{}, fmt.Errorf("model %s not found in configuration", override)
}

// GetResponseLength returns the configured answer length, defaulting to balanced.
func (c *Config) GetResponseLength() ResponseLength {
	if !c.Preferences.ResponseLength.Valid() {
		return ResponseBalanced
	}
	return c.Preferences.ResponseLength
}

// GetTimeout returns the completion timeout.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.GetTimeoutSeconds()) * time.Second
}

// GetTimeoutSeconds returns the completion timeout in seconds
func (c *Config) GetTimeoutSeconds() int {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultAPITimeoutSeconds
	}
	return c.Preferences.TimeoutSeconds
}

// GetMaxOutputTokens returns the output token ceiling
func (c *Config) GetMaxOutputTokens() int {
	if c.Preferences.MaxOutputTokens <= 0 {
		return DefaultMaxOutputTokens
	}
	return c.Preferences.MaxOutputTokens
}

// GetScrollback returns how many prior history entries accompany a request
func (c *Config) GetScrollback() int {
	if c.Context.Scrollback <= 0 {
		return DefaultScrollback
	}
	return c.Context.Scrollback
}

// GetContextMaxChars returns the context window budget
func (c *Config) GetContextMaxChars() int {
	if c.Context.MaxChars <= 0 {
		return DefaultContextMaxChars
	}
	return c.Context.MaxChars
}

// GetDefaultShell returns the shell used when detection fails.
// An empty value means no fallback.
func (c *Config) GetDefaultShell() ShellKind {
	return ParseShellKind(c.Context.DefaultShell)
}

// GetMaxLineWidth returns the display clip width
func (c *Config) GetMaxLineWidth() int {
	if c.Display.MaxLineWidth <= 0 {
		return DefaultMaxLineWidth
	}
	return c.Display.MaxLineWidth
}

// GetDiffPreviewLines returns how many changed lines the summary shows
func (c *Config) GetDiffPreviewLines() int {
	if c.Display.DiffPreviewLines <= 0 {
		return DefaultDiffPreviewLines
	}
	return c.Display.DiffPreviewLines
}

// GetCacheMaxEntries returns the maximum number of cache entries
func (c *Config) GetCacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return c.Cache.MaxEntries
}

// GetCacheTTL returns how long cached responses stay valid
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache.TTLMinutes <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// GetHistoryRetentionDays returns the number of days to retain history
func (c *Config) GetHistoryRetentionDays() int {
	if c.History.RetentionDays <= 0 {
		return DefaultHistoryRetainDays
	}
	return c.History.RetentionDays
}

// ValidateConsistency checks the internal consistency of the configuration
// Returns an error if there are inconsistencies (e.g., default model doesn't exist)
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}

	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}

	if c.Context.DefaultShell != "" && c.GetDefaultShell() == ShellUnknown {
		return fmt.Errorf("default shell %q is not supported", c.Context.DefaultShell)
	}

	return nil
}
