// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

// AnswerProvider answers knowledge questions.
// Implemented by the file-backed lookup store and the database provider; the
// dispatcher only ever sees this capability.
type AnswerProvider interface {
	// Answer returns the stored answer for question, or an error matching
	// entities.ErrNotFound when there is none.
	Answer(ctx context.Context, question string) (string, error)
}

// Evaluator computes arithmetic expressions.
type Evaluator interface {
	// Evaluate returns the canonical rendering of the expression's value, or
	// an error matching entities.ErrSyntax or entities.ErrEvaluation.
	Evaluate(expression string) (string, error)
}

// EntryWriter persists lookup entries into a writable answer source.
type EntryWriter interface {
	// Upsert stores entries; a later entry for the same question replaces an
	// earlier one.
	Upsert(ctx context.Context, entries []entities.LookupEntry) error
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
