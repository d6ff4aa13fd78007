// Package database provides the database-backed answer adapter.
// Clean Architecture: Adapter implementing ports.AnswerProvider and ports.EntryWriter
// on top of SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteRepository answers knowledge questions from a SQLite table.
// An empty table answers nothing: every question is NotFound.
type SQLiteRepository struct {
	mu     sync.RWMutex
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRepository opens (or creates) the database at path and ensures the schema.
func NewSQLiteRepository(path string, logger *zap.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = "robobob.db"
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	repo := &SQLiteRepository{db: db, logger: logger.With(zap.String("db", path))}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return repo, nil
}

// initSchema creates the necessary tables.
func (r *SQLiteRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS questions (
		question TEXT PRIMARY KEY,
		answer TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Answer looks up the normalized question.
func (r *SQLiteRepository) Answer(ctx context.Context, question string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := entities.NormalizeQuestion(question)
	r.logger.Debug("Retrieving answer from database", zap.String("question", key))

	var answer string
	err := r.db.QueryRowContext(ctx, "SELECT answer FROM questions WHERE question = ?", key).Scan(&answer)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Warn("Question not found", zap.String("question", key))
		return "", entities.NotFound(question)
	}
	if err != nil {
		return "", fmt.Errorf("querying answer: %w", err)
	}
	return answer, nil
}

// Upsert stores entries in one transaction. Questions are normalized again so
// callers may pass raw text; a later duplicate replaces an earlier one.
func (r *SQLiteRepository) Upsert(ctx context.Context, entries []entities.LookupEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO questions (question, answer, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		key := entities.NormalizeQuestion(e.Question)
		if key == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, key, e.Answer); err != nil {
			return fmt.Errorf("inserting question: %w", err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored questions.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
