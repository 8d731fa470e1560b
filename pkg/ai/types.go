package ai

import (
	"context"
	"strings"
)

// Verdict markers the oracle must lead its response with.
const (
	MarkerCorrect = "CORRETTO"
	MarkerRetry   = "RIPROVA"
)

// GradingInput carries everything the oracle needs to judge one attempt.
type GradingInput struct {
	Scenario      string
	ModelAnswer   string
	Hints         string
	StudentAnswer string
	AttemptNumber int
}

// GradingResult is the oracle's classified verdict for one attempt.
type GradingResult struct {
	IsCorrect bool                   `json:"is_correct"`
	Feedback  string                 `json:"feedback"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
}

// Evaluator describes an AI oracle capable of grading case-study answers.
type Evaluator interface {
	Evaluate(ctx context.Context, input GradingInput) (GradingResult, error)
}

// ClassifyVerdict derives the correctness flag from the oracle's raw text:
// true iff the trimmed, case-folded response starts with the correct marker.
func ClassifyVerdict(response string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(response)), MarkerCorrect)
}
