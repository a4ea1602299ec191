package domain

// RiskLevel enumerates guardrail outcomes.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity orders risk levels; unknown levels rank as safe.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// GuardrailAction describes how a suggested command should be presented.
type GuardrailAction string

const (
	ActionAllow  GuardrailAction = "allow"
	ActionWarn   GuardrailAction = "warn"
	ActionNoCopy GuardrailAction = "no_copy"
	ActionBlock  GuardrailAction = "block"
)

// RiskAssessment is the guardrail's rating of a suggested command.
type RiskAssessment struct {
	Level          RiskLevel
	Action         GuardrailAction
	Reasons        []string
	ProtectedPaths []string
	MatchedRules   []string
}

// Risky reports whether the suggestion deserves a warning.
func (r RiskAssessment) Risky() bool {
	return r.Level.Severity() > RiskLow.Severity()
}

// AllowsCopy reports whether --copy may place the suggestion on the clipboard.
func (r RiskAssessment) AllowsCopy() bool {
	return r.Action != ActionNoCopy && r.Action != ActionBlock
}
