package harness

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qubench/internal/model"
)

// stubChallenge doubles the numbers it is given and reports a fixed trace.
type stubChallenge struct {
	tolerance model.Tolerance
	trace     []string
	evalErr   error
}

func (s stubChallenge) Name() string               { return "stub" }
func (s stubChallenge) Description() string        { return "doubles its input" }
func (s stubChallenge) Cases() []model.TestCase    { return nil }
func (s stubChallenge) Tolerance() model.Tolerance { return s.tolerance }

func (s stubChallenge) Evaluate(_ context.Context, input Value) (Value, []string, error) {
	if s.evalErr != nil {
		return nil, nil, s.evalErr
	}
	fs, err := AsFloats(input)
	if err != nil {
		return nil, nil, err
	}
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = 2 * f
	}
	return FromFloats(out), s.trace, nil
}

// policyStub forbids any trace entry named in banned.
type policyStub struct {
	stubChallenge
	banned string
}

func (p policyStub) CheckTrace(ops []string) error {
	for _, op := range ops {
		if op == p.banned {
			return errors.New("circuit uses a forbidden operation")
		}
	}
	return nil
}

// roundedStub rounds its produced output to one decimal place.
type roundedStub struct {
	stubChallenge
}

func (roundedStub) RoundDecimals() int { return 1 }

func defaultStub() stubChallenge {
	return stubChallenge{tolerance: model.DefaultTolerance()}
}

func TestRunCaseCorrect(t *testing.T) {
	out := RunCase(context.Background(), defaultStub(), model.TestCase{
		Input:    "[1, 2.5]",
		Expected: "[2, 5]",
	})
	assert.Equal(t, model.VerdictCorrect, out.Verdict)
	assert.Equal(t, "[2,5]", out.Have)
	assert.Empty(t, out.Message)
}

func TestRunCaseWrongAnswer(t *testing.T) {
	out := RunCase(context.Background(), defaultStub(), model.TestCase{
		Input:    "[1]",
		Expected: "[3]",
	})
	assert.Equal(t, model.VerdictWrongAnswer, out.Verdict)
	assert.NotEmpty(t, out.Message)
}

func TestRunCaseShapeMismatchIsWrongAnswer(t *testing.T) {
	out := RunCase(context.Background(), defaultStub(), model.TestCase{
		Input:    "[1]",
		Expected: "[2, 4]",
	})
	assert.Equal(t, model.VerdictWrongAnswer, out.Verdict)
	assert.Contains(t, out.Message, "shape mismatch")
}

func TestRunCaseEvaluatorFaultIsRuntimeError(t *testing.T) {
	ch := stubChallenge{tolerance: model.DefaultTolerance(), evalErr: errors.New("simulation diverged")}
	out := RunCase(context.Background(), ch, model.TestCase{Input: "[1]", Expected: "[2]"})
	assert.Equal(t, model.VerdictRuntimeError, out.Verdict)
	assert.Contains(t, out.Message, "simulation diverged")
}

func TestRunCaseBadInputIsRuntimeError(t *testing.T) {
	out := RunCase(context.Background(), defaultStub(), model.TestCase{
		Input:    "[1, oops]",
		Expected: "[2]",
	})
	assert.Equal(t, model.VerdictRuntimeError, out.Verdict)
}

func TestRunCaseEmptyInputPassesNil(t *testing.T) {
	ch := stubChallenge{tolerance: model.DefaultTolerance()}
	out := RunCase(context.Background(), ch, model.TestCase{Input: "  ", Expected: "[1]"})
	// AsFloats(nil) fails inside Evaluate, proving nil reached it.
	assert.Equal(t, model.VerdictRuntimeError, out.Verdict)
	assert.Contains(t, out.Message, "expected a sequence")
}

func TestRunCasePolicyViolationOverridesCorrectNumbers(t *testing.T) {
	ch := policyStub{
		stubChallenge: stubChallenge{
			tolerance: model.DefaultTolerance(),
			trace:     []string{"Hadamard", "ApproxTimeEvolution"},
		},
		banned: "ApproxTimeEvolution",
	}
	out := RunCase(context.Background(), ch, model.TestCase{Input: "[1]", Expected: "[2]"})
	assert.Equal(t, model.VerdictWrongAnswer, out.Verdict)
	assert.Contains(t, out.Message, "forbidden operation")
}

func TestRunCasePolicyPassesCleanTrace(t *testing.T) {
	ch := policyStub{
		stubChallenge: stubChallenge{
			tolerance: model.DefaultTolerance(),
			trace:     []string{"IsingXX", "IsingZZ"},
		},
		banned: "ApproxTimeEvolution",
	}
	out := RunCase(context.Background(), ch, model.TestCase{Input: "[1]", Expected: "[2]"})
	assert.Equal(t, model.VerdictCorrect, out.Verdict)
}

func TestRunCaseRoundsBeforeComparing(t *testing.T) {
	ch := roundedStub{stubChallenge{tolerance: model.Tolerance{Rtol: 0, Atol: 1e-9}}}
	// 2*1.02 = 2.04 rounds to 2.
	out := RunCase(context.Background(), ch, model.TestCase{Input: "[1.02]", Expected: "[2]"})
	assert.Equal(t, model.VerdictCorrect, out.Verdict)
	assert.Equal(t, "[2]", out.Have)
}

func TestRunContinuesPastFailures(t *testing.T) {
	cases := []model.TestCase{
		{Input: "[1]", Expected: "[2]"},
		{Input: "[bad", Expected: "[2]"},
		{Input: "[3]", Expected: "[999]"},
		{Input: "[4]", Expected: "[8]"},
	}
	results := Run(context.Background(), defaultStub(), cases, nil)
	require.Len(t, results, 4)
	assert.Equal(t, model.VerdictCorrect, results[0].Verdict)
	assert.Equal(t, model.VerdictRuntimeError, results[1].Verdict)
	assert.Equal(t, model.VerdictWrongAnswer, results[2].Verdict)
	assert.Equal(t, model.VerdictCorrect, results[3].Verdict)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, cases[i].Input, res.Input)
	}
}

func TestRunReportFormat(t *testing.T) {
	var buf bytes.Buffer
	cases := []model.TestCase{
		{Input: "[1]", Expected: "[2]"},
		{Input: "[1]", Expected: "[5]"},
		{Input: "[bad", Expected: "[2]"},
	}
	Run(context.Background(), defaultStub(), cases, NewReporter(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Running test case 0 with input '[1]'...", lines[0])
	assert.Equal(t, "Correct!", lines[1])
	assert.Equal(t, "Running test case 1 with input '[1]'...", lines[2])
	assert.Equal(t, "Wrong Answer. Have: '[2]'. Want: '[5]'.", lines[3])
	assert.Equal(t, "Running test case 2 with input '[bad'...", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "Runtime Error. "), "line %q", lines[5])
}

func TestNilReporterIsSafe(t *testing.T) {
	var rep *Reporter
	rep.StartCase(0, "[1]")
	rep.Outcome(Outcome{Verdict: model.VerdictCorrect})
}
