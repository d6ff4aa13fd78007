package entities

import (
	"errors"
	"fmt"
)

// FailureKind is the closed set of outcomes a question can fail with.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	KindNotFound
	KindSyntax
	KindEvaluation
	KindBadRequest
)

func (k FailureKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindSyntax:
		return "syntax_error"
	case KindEvaluation:
		return "evaluation_error"
	case KindBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// Failure is a typed domain failure. Input echoes the offending text when
// there is one.
type Failure struct {
	Kind    FailureKind
	Input   string
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Is matches any Failure of the same kind, so errors.Is(err, ErrSyntax) works
// for every syntax failure regardless of its message.
func (f *Failure) Is(target error) bool {
	var t *Failure
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == f.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound   = &Failure{Kind: KindNotFound, Message: "question does not exist"}
	ErrSyntax     = &Failure{Kind: KindSyntax, Message: "invalid expression"}
	ErrEvaluation = &Failure{Kind: KindEvaluation, Message: "evaluation failed"}
	ErrBadRequest = &Failure{Kind: KindBadRequest, Message: "bad request"}
)

// NotFound reports a knowledge question with no matching entry.
func NotFound(question string) *Failure {
	return &Failure{Kind: KindNotFound, Input: question, Message: "Question does not exist."}
}

// SyntaxError reports expression text that does not conform to the grammar.
func SyntaxError(input, format string, args ...any) *Failure {
	return &Failure{
		Kind:    KindSyntax,
		Input:   input,
		Message: fmt.Sprintf("Invalid expression: %q: %s", input, fmt.Sprintf(format, args...)),
	}
}

// EvaluationError reports a well-formed expression with an undefined result.
func EvaluationError(input, description string) *Failure {
	return &Failure{Kind: KindEvaluation, Input: input, Message: description}
}

// BadRequest reports an input defect caught before the core is reached.
func BadRequest(message string) *Failure {
	return &Failure{Kind: KindBadRequest, Message: message}
}

// KindOf returns the failure kind carried by err, or KindUnknown.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}
