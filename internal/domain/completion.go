package domain

import "strings"

// Mode selects the prompt template and generation parameters.
type Mode string

const (
	ModeAnalyze   Mode = "analyze"
	ModeQuery     Mode = "query"
	ModeWriteFile Mode = "write"
)

// ResponseLength is the user's preferred answer verbosity.
type ResponseLength string

const (
	ResponseBrief    ResponseLength = "brief"
	ResponseBalanced ResponseLength = "balanced"
	ResponseDetailed ResponseLength = "detailed"
	ResponseVerbose  ResponseLength = "verbose"
)

// ResponseLengths lists the accepted values in menu order.
var ResponseLengths = []ResponseLength{ResponseBrief, ResponseBalanced, ResponseDetailed, ResponseVerbose}

// Valid reports whether r is a known length.
func (r ResponseLength) Valid() bool {
	for _, known := range ResponseLengths {
		if r == known {
			return true
		}
	}
	return false
}

// Instruction is the sentence appended to prompts for this length.
func (r ResponseLength) Instruction() string {
	switch ResponseLength(strings.ToLower(string(r))) {
	case ResponseBrief:
		return "Keep your response brief and concise. Provide only the essential information without elaborate explanations."
	case ResponseDetailed:
		return "Provide a detailed response with comprehensive explanations. Include relevant context and examples where helpful."
	case ResponseVerbose:
		return "Provide a very detailed and thorough response. Include comprehensive explanations, examples, context, and additional relevant information."
	default:
		return "Provide a balanced response with moderate detail. Include key information and brief explanations."
	}
}

// Describe is the menu label for the length.
func (r ResponseLength) Describe() string {
	switch r {
	case ResponseBrief:
		return "Brief - Concise, essential information only"
	case ResponseDetailed:
		return "Detailed - Comprehensive explanations with context"
	case ResponseVerbose:
		return "Verbose - Very thorough with examples and additional info"
	default:
		return "Balanced - Moderate detail with key information"
	}
}

// CompletionRequest is the provider-neutral request handed to a model.
type CompletionRequest struct {
	Mode        Mode
	System      string
	Prompt      string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

// CompletionResponse is the raw text returned by a model.
type CompletionResponse struct {
	Text  string
	Model string
}

// Analysis is the rendered answer for analyze and query modes.
type Analysis struct {
	Text       string
	Suggestion string
	Risk       *RiskAssessment
	FromCache  bool
}
