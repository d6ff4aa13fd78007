// Package arithmetic provides the expression evaluator adapter.
// Clean Architecture: Adapter implementing ports.Evaluator with a dedicated
// recursive-descent grammar over + - * / and parentheses.
package arithmetic

import (
	"errors"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

// Evaluator implements ports.Evaluator. It holds no per-call state and is
// safe for concurrent use.
type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator creates an evaluator. A nil logger disables logging.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger}
}

// Evaluate computes the expression and renders it with Format.
func (e *Evaluator) Evaluate(expression string) (string, error) {
	v, err := Eval(expression)
	if err != nil {
		e.logger.Warn("Arithmetic evaluation failed",
			zap.String("expression", expression),
			zap.Stringer("kind", entities.KindOf(err)),
			zap.Error(err))
		return "", err
	}
	return Format(v), nil
}

// Eval parses and evaluates an expression. Grammar violations are reported as
// entities.SyntaxError; division by zero and non-finite results as
// entities.EvaluationError.
func Eval(expression string) (float64, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return 0, entities.SyntaxError(expression, "%s", err.Error())
	}

	tree, err := parse(tokens)
	if err != nil {
		return 0, entities.SyntaxError(expression, "%s", err.Error())
	}

	v, err := tree.eval()
	if err != nil {
		if errors.Is(err, errDivisionByZero) {
			return 0, entities.EvaluationError(expression, "Division by zero.")
		}
		return 0, entities.EvaluationError(expression, err.Error())
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, entities.EvaluationError(expression, "Expression evaluated to an invalid number (Infinity or NaN).")
	}
	return v, nil
}

// Format renders v with no decimal point when it is a whole number and as the
// shortest round-tripping plain decimal otherwise. The whole-number test is an
// exact comparison against the floored value.
func Format(v float64) string {
	if v == math.Floor(v) {
		if v == 0 {
			v = 0 // drop the sign of negative zero
		}
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
