package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// TestCase pairs a serialized structured-numeric input with the serialized
// output the evaluator is expected to produce for it. Both sides use the
// same JSON literal grammar.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// Tolerance bounds the elementwise approximate comparison between produced
// and expected values: a pair matches when |have-want| <= atol + rtol*|want|.
type Tolerance struct {
	Rtol float64 `json:"rtol"`
	Atol float64 `json:"atol"`
}

// DefaultTolerance mirrors numpy allclose defaults; challenges override the
// relative part (and sometimes the absolute part) as their exercises demand.
func DefaultTolerance() Tolerance {
	return Tolerance{Rtol: 1e-5, Atol: 1e-8}
}

// Verdict is the terminal state of a single test case.
type Verdict string

const (
	VerdictCorrect      Verdict = "correct"
	VerdictWrongAnswer  Verdict = "wrong_answer"
	VerdictRuntimeError Verdict = "runtime_error"
)

// CaseResult records the outcome of one test case within a run.
type CaseResult struct {
	Index   int     `json:"index"`
	Input   string  `json:"input"`
	Verdict Verdict `json:"verdict"`
	Have    string  `json:"have,omitempty"`
	Want    string  `json:"want,omitempty"`
	Message string  `json:"message,omitempty"`
}

// RunRecord is the persisted result of one batch of test cases against a
// single challenge.
type RunRecord struct {
	VersionedRecord
	ID        string       `json:"id"`
	Challenge string       `json:"challenge"`
	StartedAt time.Time    `json:"started_at"`
	ElapsedMS int64        `json:"elapsed_ms"`
	Cases     []CaseResult `json:"cases"`
	Correct   int          `json:"correct"`
	Wrong     int          `json:"wrong"`
	Errored   int          `json:"errored"`
}

// ChallengeSummary aggregates run history for one registered challenge.
type ChallengeSummary struct {
	VersionedRecord
	Name        string `json:"name"`
	Description string `json:"description"`
	RunCount    int    `json:"run_count"`
	LastRunID   string `json:"last_run_id"`
	LastCorrect int    `json:"last_correct"`
	LastWrong   int    `json:"last_wrong"`
	LastErrored int    `json:"last_errored"`
}
