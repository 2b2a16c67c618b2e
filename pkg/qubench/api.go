// Package qubench is the embedding API for the exercise harness. The CLI
// is a thin shell over this package.
package qubench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"qubench/internal/challenge"
	"qubench/internal/harness"
	"qubench/internal/model"
	"qubench/internal/storage"
	"qubench/internal/suite"
)

const defaultDBPath = "qubench.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

// RunRequest selects a challenge and, optionally, replaces its authored
// test cases or tolerance with suite-supplied ones.
type RunRequest struct {
	Challenge string
	Cases     []model.TestCase
	Tolerance *model.Tolerance
	Reporter  *harness.Reporter
}

type ChallengeItem struct {
	Name        string
	Description string
	CaseCount   int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Reset(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	return c.store.Reset(ctx)
}

// Challenges lists the registered challenges sorted by name.
func (c *Client) Challenges(_ context.Context) []ChallengeItem {
	all := challenge.All()
	out := make([]ChallengeItem, 0, len(all))
	for _, ch := range all {
		out = append(out, ChallengeItem{
			Name:        ch.Name(),
			Description: ch.Description(),
			CaseCount:   len(ch.Cases()),
		})
	}
	return out
}

// Run executes one challenge over its test cases, persists the run record
// and refreshes the challenge summary.
func (c *Client) Run(ctx context.Context, req RunRequest) (model.RunRecord, error) {
	if req.Challenge == "" {
		return model.RunRecord{}, errors.New("challenge name is required")
	}
	ch, ok := challenge.Lookup(req.Challenge)
	if !ok {
		return model.RunRecord{}, fmt.Errorf("unknown challenge: %s", req.Challenge)
	}

	cases := req.Cases
	if cases == nil {
		cases = ch.Cases()
	}
	if len(cases) == 0 {
		return model.RunRecord{}, fmt.Errorf("challenge %s has no test cases; supply a suite", req.Challenge)
	}

	run := ch
	if req.Tolerance != nil {
		run = overrideTolerance{Challenge: ch, tolerance: *req.Tolerance}
	}

	if err := c.store.Init(ctx); err != nil {
		return model.RunRecord{}, err
	}

	started := time.Now().UTC()
	results := harness.Run(ctx, run, cases, req.Reporter)
	elapsed := time.Since(started)

	record := model.RunRecord{
		VersionedRecord: storage.Stamp(),
		ID:              uuid.NewString(),
		Challenge:       ch.Name(),
		StartedAt:       started,
		ElapsedMS:       elapsed.Milliseconds(),
		Cases:           results,
	}
	for _, res := range results {
		switch res.Verdict {
		case model.VerdictCorrect:
			record.Correct++
		case model.VerdictWrongAnswer:
			record.Wrong++
		case model.VerdictRuntimeError:
			record.Errored++
		}
	}

	if err := c.store.SaveRun(ctx, record); err != nil {
		return model.RunRecord{}, err
	}

	summary, _, err := c.store.GetChallengeSummary(ctx, ch.Name())
	if err != nil {
		return model.RunRecord{}, err
	}
	summary.VersionedRecord = storage.Stamp()
	summary.Name = ch.Name()
	summary.Description = ch.Description()
	summary.RunCount++
	summary.LastRunID = record.ID
	summary.LastCorrect = record.Correct
	summary.LastWrong = record.Wrong
	summary.LastErrored = record.Errored
	if err := c.store.SaveChallengeSummary(ctx, summary); err != nil {
		return model.RunRecord{}, err
	}

	return record, nil
}

// RunSuite executes a suite file's cases against the challenge it names.
func (c *Client) RunSuite(ctx context.Context, s *suite.Suite, rep *harness.Reporter) (model.RunRecord, error) {
	if s == nil {
		return model.RunRecord{}, errors.New("suite is required")
	}
	return c.Run(ctx, RunRequest{
		Challenge: s.Challenge,
		Cases:     s.Cases,
		Tolerance: s.Tolerance,
		Reporter:  rep,
	})
}

// Runs lists stored run records, newest last.
func (c *Client) Runs(ctx context.Context) ([]model.RunRecord, error) {
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx)
}

// Results fetches one stored run record by its identifier.
func (c *Client) Results(ctx context.Context, runID string) (model.RunRecord, error) {
	if runID == "" {
		return model.RunRecord{}, errors.New("run id is required")
	}
	if err := c.store.Init(ctx); err != nil {
		return model.RunRecord{}, err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("run not found: %s", runID)
	}
	return record, nil
}

// Summaries lists the aggregated per-challenge run history.
func (c *Client) Summaries(ctx context.Context) ([]model.ChallengeSummary, error) {
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	return c.store.ListChallengeSummaries(ctx)
}

// overrideTolerance swaps the comparison tolerance while delegating
// everything else, including the optional rounding and trace policy
// behaviors, to the wrapped challenge.
type overrideTolerance struct {
	harness.Challenge
	tolerance model.Tolerance
}

func (o overrideTolerance) Tolerance() model.Tolerance { return o.tolerance }

func (o overrideTolerance) RoundDecimals() int {
	if r, ok := o.Challenge.(harness.Rounded); ok {
		return r.RoundDecimals()
	}
	return -1
}

func (o overrideTolerance) CheckTrace(ops []string) error {
	if p, ok := o.Challenge.(harness.Policy); ok {
		return p.CheckTrace(ops)
	}
	return nil
}
