package arithmetic

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

func TestEvaluator_ValidExpressions(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"5.5 + 2.5", "8"},
		{"5.5 + 2.6", "8.1"},
		{"7 / 2", "3.5"},
		{"6 / 3", "2"},
		{"1 + 2 + 3 + 4 + 5", "15"},
		{"2+2", "4"},
		{"2*10.5+1", "22"},
		{"10 - 4 - 3", "3"},
		{"64 / 4 / 2", "8"},
		{"-2 + 5", "3"},
		{"2 * -3", "-6"},
		{"-(-2)", "2"},
		{"-(2 + 3) * 2", "-10"},
		{"((((7))))", "7"},
		{"  42  ", "42"},
		{"0 * -1", "0"},
		{"1 / 4", "0.25"},
		{"0.1 + 0.2", "0.30000000000000004"},
		{"1 / 3", "0.3333333333333333"},
		{"100000000000 * 100000000000", "10000000000000000000000"},
		{"\t3\n*\n3", "9"},
	}

	ev := NewEvaluator(nil)
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := ev.Evaluate(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluator_SyntaxErrors(t *testing.T) {
	cases := []string{
		"2 + * 5",
		"(3 + 2",
		"2 + (3 * )",
		"2 + three",
		"abc123",
		"",
		"   ",
		"2 3",
		"()",
		"3 + 2)",
		"--2",
		"+2",
		".5",
		"5.",
		"1.2.3",
		"2 ^ 3",
		"2 +",
		"*",
		"٣ + 1",
	}

	ev := NewEvaluator(nil)
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			_, err := ev.Evaluate(expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrSyntax), "expected syntax error, got %v", err)

			var f *entities.Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, expr, f.Input)
		})
	}
}

func TestEvaluator_EvaluationErrors(t *testing.T) {
	cases := []string{
		"5 / 0",
		"0 / 0",
		" 0 / 0",
		"1 / (2 - 2)",
		"1 / -0",
		"1 / 0.0",
	}

	ev := NewEvaluator(nil)
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			_, err := ev.Evaluate(expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrEvaluation), "expected evaluation error, got %v", err)
			assert.False(t, errors.Is(err, entities.ErrSyntax))
		})
	}
}

func TestEval_NonFiniteResult(t *testing.T) {
	// Each factor fits in a float64; the product overflows.
	big := "100000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000"
	_, err := Eval(big + " * " + big)

	require.Error(t, err)
	assert.Equal(t, entities.KindEvaluation, entities.KindOf(err))
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{-8, "-8"},
		{3.5, "3.5"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1000000000000000000000"},
		{0.001, "0.001"},
		{123456789.125, "123456789.125"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.in), "Format(%v)", tc.in)
	}
}

func TestEvaluator_Idempotent(t *testing.T) {
	ev := NewEvaluator(nil)

	first, err1 := ev.Evaluate("(1.5 + 2) * 3 / 7")
	second, err2 := ev.Evaluate("(1.5 + 2) * 3 / 7")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestEvaluator_ConcurrentUse(t *testing.T) {
	ev := NewEvaluator(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ev.Evaluate("2 + 3 * 4")
			assert.NoError(t, err)
			assert.Equal(t, "14", got)
		}()
	}
	wg.Wait()
}

func TestEvaluator_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ev := NewEvaluator(zap.New(core))

	_, err := ev.Evaluate("5 / 0")
	require.Error(t, err)

	entries := logs.FilterMessage("Arithmetic evaluation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "5 / 0", entries[0].ContextMap()["expression"])
	assert.Equal(t, "evaluation_error", entries[0].ContextMap()["kind"])
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := tokenize(" 12.5*(3)")
	require.NoError(t, err)

	kinds := make([]tokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.kind
	}
	assert.Equal(t, []tokenKind{tokNumber, tokStar, tokLParen, tokNumber, tokRParen, tokEOF}, kinds)
	assert.Equal(t, "12.5", tokens[0].text)
	assert.Equal(t, 1, tokens[0].pos)
	assert.Equal(t, 5, tokens[1].pos)
}
