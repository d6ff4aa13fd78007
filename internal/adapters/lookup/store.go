// Package lookup provides the file-backed knowledge lookup adapter.
// Clean Architecture: Adapter implementing ports.AnswerProvider.
package lookup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

// Delimiter separates a question from its answer on a source line.
const Delimiter = "="

// ParseResult is the outcome of reading a lookup source.
type ParseResult struct {
	Entries []entities.LookupEntry // in source order, duplicates included
	Skipped []int                  // 1-based line numbers of ignored non-blank lines
}

// Parse reads a newline-delimited question=answer source. The split happens
// on the first delimiter, so answers may contain '='. Keys are normalized with
// entities.NormalizeQuestion and answers are trimmed. Lines without a
// delimiter or with an empty question are skipped.
func Parse(r io.Reader) (ParseResult, error) {
	var res ParseResult

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			lineNo++
			res.addLine(lineNo, raw)
		}
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("reading line %d: %w", lineNo+1, err)
		}
	}
}

func (res *ParseResult) addLine(lineNo int, raw string) {
	line := strings.TrimSpace(raw)
	if lineNo == 1 {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	}
	if line == "" {
		return
	}

	question, answer, ok := strings.Cut(line, Delimiter)
	key := entities.NormalizeQuestion(question)
	if !ok || key == "" {
		res.Skipped = append(res.Skipped, lineNo)
		return
	}
	res.Entries = append(res.Entries, entities.LookupEntry{
		Question: key,
		Answer:   strings.TrimSpace(answer),
	})
}

// Store is an immutable question→answer map. It is built once and never
// written afterwards, so concurrent Answer calls need no locking.
type Store struct {
	entries map[string]string
	logger  *zap.Logger
}

// NewStore builds a store from entries. For duplicate questions the last
// entry wins.
func NewStore(entries []entities.LookupEntry, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Question] = e.Answer
	}
	return &Store{entries: m, logger: logger}
}

// Load builds a store from the file at path. It never fails: a missing or
// unreadable file yields an empty store and an error log, and a read error
// part way through keeps the entries read before it.
func Load(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("Questions file does not exist")
		} else {
			log.Error("Error reading questions file", zap.Error(err))
		}
		return NewStore(nil, logger)
	}
	defer file.Close()

	res, err := Parse(file)
	if err != nil {
		log.Error("Error reading questions file", zap.Error(err), zap.Int("entries_kept", len(res.Entries)))
	}
	for _, n := range res.Skipped {
		log.Warn("Skipping invalid line format", zap.Int("line", n))
	}

	store := NewStore(res.Entries, logger)
	log.Info("Loaded question-answer pairs",
		zap.Int("entries", store.Len()),
		zap.Int("skipped", len(res.Skipped)))
	return store
}

// Answer normalizes question and returns its stored answer, or an
// entities.NotFound failure.
func (s *Store) Answer(ctx context.Context, question string) (string, error) {
	key := entities.NormalizeQuestion(question)
	s.logger.Debug("Retrieving answer from local storage", zap.String("question", key))

	answer, ok := s.entries[key]
	if !ok {
		s.logger.Warn("Question not found", zap.String("question", key))
		return "", entities.NotFound(question)
	}
	return answer, nil
}

// Len returns the number of distinct questions.
func (s *Store) Len() int {
	return len(s.entries)
}
