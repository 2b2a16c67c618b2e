package storage

import (
	"errors"
	"testing"
	"time"

	"qubench/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	in := model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              "run-1",
		Challenge:       "tensor-observable",
		StartedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ElapsedMS:       42,
		Cases: []model.CaseResult{
			{Index: 0, Input: "1.23456", Verdict: model.VerdictCorrect, Have: "0.33", Want: "0.3299365180851774"},
			{Index: 1, Input: "oops", Verdict: model.VerdictRuntimeError, Message: "decode: invalid literal"},
		},
		Correct: 1,
		Errored: 1,
	}

	data, err := EncodeRun(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != in.ID || out.Challenge != in.Challenge || len(out.Cases) != 2 {
		t.Fatalf("unexpected record: %+v", out)
	}
	if out.Cases[1].Verdict != model.VerdictRuntimeError {
		t.Fatalf("unexpected verdict: %s", out.Cases[1].Verdict)
	}
	if !out.StartedAt.Equal(in.StartedAt) {
		t.Fatalf("started at = %v, want %v", out.StartedAt, in.StartedAt)
	}
}

func TestRunCodecVersionMismatch(t *testing.T) {
	stale := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 99, CodecVersion: CurrentCodecVersion},
		ID:              "run-1",
	}
	data, err := EncodeRun(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("err = %v, want version mismatch", err)
	}
}

func TestChallengeSummaryCodec(t *testing.T) {
	in := model.ChallengeSummary{
		VersionedRecord: Stamp(),
		Name:            "reaction-energy",
		RunCount:        3,
		LastRunID:       "run-3",
	}
	data, err := EncodeChallengeSummary(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeChallengeSummary(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != in.Name || out.RunCount != 3 {
		t.Fatalf("unexpected summary: %+v", out)
	}

	if _, err := DecodeChallengeSummary([]byte("{")); err == nil {
		t.Fatal("expected malformed payload to fail")
	}
	stale := in
	stale.CodecVersion = 0
	data, err = EncodeChallengeSummary(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeChallengeSummary(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("err = %v, want version mismatch", err)
	}
}
