package harness

import (
	"context"
	"strings"

	"qubench/internal/model"
)

// Challenge is one exercise: authored test cases plus an evaluator that
// maps a decoded input to a numeric result and the trace of primitive
// operations its circuit issued.
type Challenge interface {
	Name() string
	Description() string
	Cases() []model.TestCase
	Tolerance() model.Tolerance
	Evaluate(ctx context.Context, input Value) (Value, []string, error)
}

// Rounded is implemented by challenges whose produced output is rounded to
// a fixed number of decimal places before encoding.
type Rounded interface {
	RoundDecimals() int
}

// Policy is implemented by challenges that constrain which primitive
// operations the evaluator's circuit may use. CheckTrace runs even when
// the numeric comparison passes; a non-nil error downgrades the case to a
// wrong answer.
type Policy interface {
	CheckTrace(ops []string) error
}

// Outcome is the terminal result of a single test case.
type Outcome struct {
	Verdict model.Verdict
	Have    string
	Want    string
	Message string
}

// RunCase drives one test case through decode, evaluate, encode, compare
// and policy check. Evaluator faults become a runtime-error outcome; they
// never propagate, so a batch always continues past a broken case.
func RunCase(ctx context.Context, ch Challenge, tc model.TestCase) Outcome {
	var input Value
	if strings.TrimSpace(tc.Input) != "" {
		decoded, err := DecodeValue(tc.Input)
		if err != nil {
			return Outcome{Verdict: model.VerdictRuntimeError, Message: err.Error()}
		}
		input = decoded
	}

	result, trace, err := ch.Evaluate(ctx, input)
	if err != nil {
		return Outcome{Verdict: model.VerdictRuntimeError, Message: err.Error()}
	}

	decimals := -1
	if r, ok := ch.(Rounded); ok {
		decimals = r.RoundDecimals()
	}
	have, err := EncodeValue(result, decimals)
	if err != nil {
		return Outcome{Verdict: model.VerdictRuntimeError, Message: err.Error()}
	}

	haveVal, err := DecodeValue(have)
	if err != nil {
		return Outcome{Verdict: model.VerdictRuntimeError, Message: err.Error()}
	}
	wantVal, err := DecodeValue(tc.Expected)
	if err != nil {
		return Outcome{Verdict: model.VerdictRuntimeError, Message: "expected output: " + err.Error()}
	}

	out := Outcome{Verdict: model.VerdictCorrect, Have: have, Want: tc.Expected}
	if cmpErr := Compare(haveVal, wantVal, ch.Tolerance()); cmpErr != nil {
		out.Verdict = model.VerdictWrongAnswer
		out.Message = cmpErr.Error()
	}

	if policy, ok := ch.(Policy); ok {
		if perr := policy.CheckTrace(trace); perr != nil {
			out.Verdict = model.VerdictWrongAnswer
			out.Message = perr.Error()
		}
	}
	return out
}

// Run executes every test case sequentially and reports each outcome as it
// lands. A nil reporter runs silently.
func Run(ctx context.Context, ch Challenge, cases []model.TestCase, rep *Reporter) []model.CaseResult {
	results := make([]model.CaseResult, 0, len(cases))
	for i, tc := range cases {
		rep.StartCase(i, tc.Input)
		out := RunCase(ctx, ch, tc)
		rep.Outcome(out)
		results = append(results, model.CaseResult{
			Index:   i,
			Input:   tc.Input,
			Verdict: out.Verdict,
			Have:    out.Have,
			Want:    out.Want,
			Message: out.Message,
		})
	}
	return results
}
