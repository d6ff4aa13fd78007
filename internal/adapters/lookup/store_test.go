package lookup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

func writeSource(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	return path
}

func TestStore_RoundTrip(t *testing.T) {
	path := writeSource(t,
		"What is Java?=Java is a programming language.",
		"  Trim this   =   Trimmed answer",
	)
	store := Load(path, nil)
	ctx := context.Background()

	for _, q := range []string{"What is Java?", "what is java?", "  WHAT IS JAVA?  "} {
		got, err := store.Answer(ctx, q)
		require.NoError(t, err, q)
		assert.Equal(t, "Java is a programming language.", got)
	}

	got, err := store.Answer(ctx, "  Trim this  ")
	require.NoError(t, err)
	assert.Equal(t, "Trimmed answer", got)
}

func TestStore_UnknownQuestionIsNotFound(t *testing.T) {
	store := Load(writeSource(t, "a=b"), nil)

	_, err := store.Answer(context.Background(), "What is your name")

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}

func TestStore_EmptyAnswerIsDistinctFromMissing(t *testing.T) {
	store := Load(writeSource(t, "silence="), nil)

	got, err := store.Answer(context.Background(), "silence")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = store.Answer(context.Background(), "noise")
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}

func TestStore_MissingFileYieldsEmptyStore(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	store := Load("/invalid/path/nonexistent.txt", zap.New(core))

	assert.Equal(t, 0, store.Len())
	_, err := store.Answer(context.Background(), "Unknown question")
	assert.True(t, errors.Is(err, entities.ErrNotFound))
	assert.Equal(t, 1, logs.FilterMessage("Questions file does not exist").Len())
}

func TestStore_UnreadableSourceYieldsEmptyStore(t *testing.T) {
	// A directory opens fine but fails on read.
	store := Load(t.TempDir(), nil)

	assert.Equal(t, 0, store.Len())
}

func TestStore_DuplicateQuestionsLastWins(t *testing.T) {
	store := Load(writeSource(t,
		"Colour=red",
		"colour = green",
		"  COLOUR=blue",
	), nil)

	got, err := store.Answer(context.Background(), "colour")
	require.NoError(t, err)
	assert.Equal(t, "blue", got)
	assert.Equal(t, 1, store.Len())
}

func TestParse_FirstDelimiterWins(t *testing.T) {
	res, err := Parse(strings.NewReader("What is 1+1=?=It is 2 = two\n"))
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "what is 1+1", res.Entries[0].Question)
	assert.Equal(t, "?=It is 2 = two", res.Entries[0].Answer)
}

func TestParse_SkipsInvalidLines(t *testing.T) {
	src := strings.Join([]string{
		"valid=yes",
		"no delimiter here",
		"",
		"   ",
		"=orphan answer",
		"another = one",
	}, "\n")

	res, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Len(t, res.Entries, 2)
	assert.Equal(t, []int{2, 5}, res.Skipped)
}

func TestParse_HandlesCRLFAndBOM(t *testing.T) {
	res, err := Parse(strings.NewReader("\ufeffHello=World\r\nBye=Now\r\n"))
	require.NoError(t, err)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, entities.LookupEntry{Question: "hello", Answer: "World"}, res.Entries[0])
	assert.Equal(t, entities.LookupEntry{Question: "bye", Answer: "Now"}, res.Entries[1])
}

func TestLoad_VeryLongLineDoesNotDropEntries(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	path := writeSource(t,
		"What is Java?=Java is a programming language.",
		"big="+long,
		"What is Go?=Go.",
	)

	store := Load(path, nil)

	require.Equal(t, 3, store.Len())
	answer, err := store.Answer(context.Background(), "What is Java?")
	require.NoError(t, err)
	assert.Equal(t, "Java is a programming language.", answer)
	answer, err = store.Answer(context.Background(), "What is Go?")
	require.NoError(t, err)
	assert.Equal(t, "Go.", answer)
	answer, err = store.Answer(context.Background(), "big")
	require.NoError(t, err)
	assert.Len(t, answer, len(long))
}

// failingReader returns data and then a read error.
type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("disk gone")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestParse_ReadErrorKeepsEarlierLines(t *testing.T) {
	res, err := Parse(&failingReader{data: "a=1\nb=2\n"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading line 3")
	assert.Equal(t, []entities.LookupEntry{
		{Question: "a", Answer: "1"},
		{Question: "b", Answer: "2"},
	}, res.Entries)
}

func TestLoad_LogsSkippedLines(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	Load(writeSource(t, "ok=fine", "broken line"), zap.New(core))

	skipped := logs.FilterMessage("Skipping invalid line format").All()
	require.Len(t, skipped, 1)
	assert.EqualValues(t, 2, skipped[0].ContextMap()["line"])

	loaded := logs.FilterMessage("Loaded question-answer pairs").All()
	require.Len(t, loaded, 1)
	assert.EqualValues(t, 1, loaded[0].ContextMap()["entries"])
}

func TestStore_ConcurrentReads(t *testing.T) {
	store := NewStore([]entities.LookupEntry{{Question: "ping", Answer: "pong"}}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := store.Answer(context.Background(), " PING ")
			assert.NoError(t, err)
			assert.Equal(t, "pong", got)
		}()
	}
	wg.Wait()
}
