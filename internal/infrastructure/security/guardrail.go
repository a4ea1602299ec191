// Package security rates suggested shell commands against regex rules.
package security

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
	"github.com/doeshing/huh-go/internal/ports"
)

// Guardrail implements the SecurityService port.
type Guardrail struct {
	patterns       []compiledPattern
	protectedPaths []string
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule DangerPattern
}

// DangerPattern describes a regex-based guardrail rule.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
	Action  string `yaml:"action"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DangerPatterns []DangerPattern `yaml:"danger_patterns"`
		ProtectedPaths []string        `yaml:"protected_paths"`
	} `yaml:"rules"`
}

// NewGuardrail loads rules from path. A missing file or an empty rule set
// falls back to the built-in rules; a malformed file is an error.
func NewGuardrail(path string) (*Guardrail, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return compile(rules)
}

// ParseRules builds a guardrail from YAML bytes.
func ParseRules(data []byte) (*Guardrail, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse guardrail rules: %w", err)
	}
	applyDefaults(&rules)
	return compile(rules)
}

func compile(rules RulesFile) (*Guardrail, error) {
	var compiled []compiledPattern
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, fmt.Errorf("guardrail pattern %q: %w", pattern.Pattern, err)
		}
		compiled = append(compiled, compiledPattern{re: re, rule: pattern})
	}
	return &Guardrail{patterns: compiled, protectedPaths: rules.Rules.ProtectedPaths}, nil
}

// RuleCount reports how many patterns are active.
func (g *Guardrail) RuleCount() int {
	return len(g.patterns)
}

// Evaluate implements ports.SecurityService.
func (g *Guardrail) Evaluate(command string) (domain.RiskAssessment, error) {
	if g == nil {
		return domain.RiskAssessment{}, errors.New("guardrail nil")
	}
	assessment := domain.RiskAssessment{
		Level:  domain.RiskSafe,
		Action: domain.ActionAllow,
	}
	command = strings.TrimSpace(command)
	if command == "" {
		return assessment, nil
	}

	raise := func(level domain.RiskLevel, action domain.GuardrailAction) {
		if level.Severity() > assessment.Level.Severity() {
			assessment.Level = level
			assessment.Action = action
		}
	}
	for _, pattern := range g.patterns {
		if !pattern.re.MatchString(command) {
			continue
		}
		level := parseRiskLevel(pattern.rule.Level)
		raise(level, parseAction(pattern.rule.Action, level))
		assessment.Reasons = append(assessment.Reasons, pattern.rule.Message)
		assessment.MatchedRules = append(assessment.MatchedRules, pattern.rule.Pattern)
	}
	if isDestructive(command) {
		for _, protected := range g.protectedPaths {
			if touchesPath(command, protected) {
				assessment.ProtectedPaths = append(assessment.ProtectedPaths, protected)
			}
		}
		if len(assessment.ProtectedPaths) > 0 {
			raise(domain.RiskHigh, domain.ActionNoCopy)
			assessment.Reasons = append(assessment.Reasons, "Modifies protected path "+strings.Join(assessment.ProtectedPaths, ", "))
		}
	}
	return assessment, nil
}

var destructiveVerbs = regexp.MustCompile(`(^|[;&|]\s*|sudo\s+)(rm|mv|chmod|chown|truncate|shred|dd)\b`)

func isDestructive(command string) bool {
	return destructiveVerbs.MatchString(command)
}

func touchesPath(command, protected string) bool {
	protected = strings.TrimRight(filesystem.ExpandPath(protected), "/")
	if protected == "" {
		return false
	}
	for _, field := range strings.Fields(command) {
		field = filesystem.ExpandPath(strings.Trim(field, `"'`))
		if field == protected || strings.HasPrefix(field, protected+"/") {
			return true
		}
	}
	return false
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data, err := os.ReadFile(ResolveRulesPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyDefaults(&rules)
			return rules, nil
		}
		return RulesFile{}, err
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse guardrail rules: %w", err)
	}
	applyDefaults(&rules)
	return rules, nil
}

func applyDefaults(rules *RulesFile) {
	if len(rules.Rules.DangerPatterns) == 0 {
		rules.Rules.DangerPatterns = defaultPatterns()
	}
	if rules.Rules.ProtectedPaths == nil {
		rules.Rules.ProtectedPaths = defaultProtectedPaths()
	}
}

func parseRiskLevel(value string) domain.RiskLevel {
	switch strings.ToLower(value) {
	case "low":
		return domain.RiskLow
	case "medium":
		return domain.RiskMedium
	case "high":
		return domain.RiskHigh
	case "critical":
		return domain.RiskCritical
	default:
		return domain.RiskSafe
	}
}

func parseAction(value string, fallback domain.RiskLevel) domain.GuardrailAction {
	switch strings.ToLower(value) {
	case "allow":
		return domain.ActionAllow
	case "warn":
		return domain.ActionWarn
	case "no_copy":
		return domain.ActionNoCopy
	case "block":
		return domain.ActionBlock
	default:
		if fallback == domain.RiskSafe {
			return domain.ActionAllow
		}
		return domain.ActionWarn
	}
}

// ResolveRulesPath resolves the configured rules file; relative paths live under ~/.huh.
func ResolveRulesPath(path string) string {
	if path == "" {
		return DefaultRulesPath()
	}
	expanded := filesystem.ExpandPath(path)
	if strings.HasPrefix(expanded, "/") {
		return expanded
	}
	return filesystem.ExpandPath("~/.huh/" + expanded)
}

// DefaultRulesPath is ~/.huh/guardrail.yaml.
func DefaultRulesPath() string {
	return filesystem.ExpandPath("~/.huh/guardrail.yaml")
}

func defaultPatterns() []DangerPattern {
	return []DangerPattern{
		{Pattern: `rm\s+-(rf|fr)\s+/(\s|$|\*)`, Level: "critical", Message: "Deleting root directory", Action: "block"},
		{Pattern: `rm\s+-(rf|fr)\s+\*`, Level: "critical", Message: "Recursive delete everything", Action: "no_copy"},
		{Pattern: `dd\s+if=`, Level: "critical", Message: "Raw disk writing", Action: "block"},
		{Pattern: `mkfs\.`, Level: "critical", Message: "Formatting filesystem", Action: "block"},
		{Pattern: `>\s*/dev/(sd[a-z]|nvme)`, Level: "critical", Message: "Writing to block device", Action: "block"},
		{Pattern: `:\(\)\s*\{\s*:\|:&\s*\};:`, Level: "critical", Message: "Fork bomb", Action: "block"},
		{Pattern: `rm\s+-(rf|fr)\s+(\$HOME|~)(/?\s|/?$)`, Level: "high", Message: "Deleting home directory", Action: "no_copy"},
		{Pattern: `(curl|wget)[^|]*\|\s*(sudo\s+)?(ba|z)?sh`, Level: "high", Message: "Piping remote script to a shell", Action: "warn"},
		{Pattern: `git\s+push\s+.*(--force|-f)(\s|$)`, Level: "medium", Message: "Force push rewrites remote history", Action: "warn"},
		{Pattern: `git\s+reset\s+--hard`, Level: "medium", Message: "Discards uncommitted changes", Action: "warn"},
		{Pattern: `chmod\s+(-R\s+)?777`, Level: "medium", Message: "Overly permissive chmod", Action: "warn"},
		{Pattern: `^sudo\s`, Level: "low", Message: "Runs with elevated privileges", Action: "allow"},
	}
}

func defaultProtectedPaths() []string {
	return []string{"/", "/etc", "/usr", "/bin", "/sbin", "/boot", "/var", "/System", "~/.ssh"}
}

var _ ports.SecurityService = (*Guardrail)(nil)
