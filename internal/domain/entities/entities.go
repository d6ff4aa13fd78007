// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "strings"

// Classification tags a query with the answer source that should handle it.
type Classification int

const (
	// Knowledge queries are answered by a lookup provider.
	Knowledge Classification = iota
	// Arithmetic queries are answered by the expression evaluator.
	Arithmetic
)

func (c Classification) String() string {
	switch c {
	case Arithmetic:
		return "arithmetic"
	case Knowledge:
		return "knowledge"
	default:
		return "unknown"
	}
}

// LookupEntry is a single normalized question with its answer.
type LookupEntry struct {
	Question string // normalized key
	Answer   string
}

// QuestionRequest is the raw question submitted by a caller.
type QuestionRequest struct {
	Question string `json:"question"`
}

// AnswerResponse carries the single textual answer for a question.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// NormalizeQuestion trims surrounding whitespace and case-folds the text.
// Lookup keys and incoming questions go through the same function.
func NormalizeQuestion(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
