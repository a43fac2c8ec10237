package models

// SourceMode tells the caller which path produced an explanation.
type SourceMode string

const (
	SourceAI        SourceMode = "ai"
	SourceHeuristic SourceMode = "heuristic"
)

// CodeSample is the unit of work for one explanation request.
type CodeSample struct {
	Text             string
	DeclaredLanguage string
	Path             string
}

// ExplanationResult is what the engine hands back for every well-formed request.
type ExplanationResult struct {
	Body       string     `json:"body" yaml:"body"`
	SourceMode SourceMode `json:"source_mode" yaml:"source_mode"`
	Note       string     `json:"note,omitempty" yaml:"note,omitempty"`
}

// PromptDocument is a rendered prompt for the generative backend.
type PromptDocument struct {
	SystemInstruction string
	UserPrompt        string
}
