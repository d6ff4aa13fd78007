// Package usecases - dispatch.go classifies questions and routes them to an answer source.
package usecases

import (
	"context"
	"strings"
	"unicode"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
	"github.com/0xcro3dile/robobob/internal/domain/ports"
)

// Dispatcher routes a question to the evaluator or the knowledge provider.
// It holds no state of its own and does not own either dependency.
type Dispatcher struct {
	evaluator ports.Evaluator
	provider  ports.AnswerProvider
}

// NewDispatcher creates a Dispatcher with injected dependencies.
func NewDispatcher(evaluator ports.Evaluator, provider ports.AnswerProvider) *Dispatcher {
	return &Dispatcher{
		evaluator: evaluator,
		provider:  provider,
	}
}

// Classify tags a query as Arithmetic when every character of the trimmed
// text is a digit, '.', an operator, a parenthesis or whitespace. It is a
// character-class test only: "2 + * 5" is Arithmetic, and so is an empty
// query, which the evaluator then rejects.
func Classify(query string) entities.Classification {
	for _, r := range strings.TrimSpace(query) {
		if !isArithmeticRune(r) {
			return entities.Knowledge
		}
	}
	return entities.Arithmetic
}

func isArithmeticRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune("+-*/.()", r)
}

// Route answers a raw query. Failures from either branch are returned as is.
func (d *Dispatcher) Route(ctx context.Context, query string) (string, error) {
	if Classify(query) == entities.Arithmetic {
		return d.evaluator.Evaluate(query)
	}
	return d.provider.Answer(ctx, query)
}

// Ask answers a question request.
func (d *Dispatcher) Ask(ctx context.Context, req *entities.QuestionRequest) (*entities.AnswerResponse, error) {
	answer, err := d.Route(ctx, req.Question)
	if err != nil {
		return nil, err
	}
	return &entities.AnswerResponse{Answer: answer}, nil
}
