package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"qubench/internal/harness"
	"qubench/internal/model"
	"qubench/internal/storage"
	"qubench/internal/suite"
	qbapi "qubench/pkg/qubench"
)

const defaultDBPath = "qubench.db"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "list":
		return runList(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "results":
		return runResults(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func storeFlags(fs *flag.FlagSet) (storeKind, dbPath *string) {
	storeKind = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db-path", defaultDBPath, "sqlite database path")
	return storeKind, dbPath
}

func newClient(storeKind, dbPath string) (*qbapi.Client, error) {
	return qbapi.New(qbapi.Options{StoreKind: storeKind, DBPath: dbPath})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(storage.DefaultStoreKind(), defaultDBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	for _, item := range client.Challenges(ctx) {
		fmt.Printf("%-20s cases=%d  %s\n", item.Name, item.CaseCount, item.Description)
	}
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	challengeName := fs.String("challenge", "", "challenge to run")
	suitePath := fs.String("suite", "", "YAML suite file with custom test cases")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *challengeName == "" && *suitePath == "" {
		return usageError("run requires --challenge or --suite")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	rep := harness.NewConsoleReporter()

	var record model.RunRecord
	if *suitePath != "" {
		s, err := suite.Load(*suitePath)
		if err != nil {
			return err
		}
		if *challengeName != "" && *challengeName != s.Challenge {
			return fmt.Errorf("suite targets challenge %s, not %s", s.Challenge, *challengeName)
		}
		record, err = client.RunSuite(ctx, s, rep)
		if err != nil {
			return err
		}
	} else {
		record, err = client.Run(ctx, qbapi.RunRequest{Challenge: *challengeName, Reporter: rep})
		if err != nil {
			return err
		}
	}

	fmt.Printf("run %s: correct=%d wrong=%d errored=%d\n", record.ID, record.Correct, record.Wrong, record.Errored)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	limit := fs.Int("limit", 20, "maximum runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit < 0 {
		return usageError("limit must be >= 0")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	records, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if *limit > 0 && len(records) > *limit {
		records = records[len(records)-*limit:]
	}
	for _, rec := range records {
		fmt.Printf("%s  %-20s %-14s correct=%d wrong=%d errored=%d\n",
			rec.ID, rec.Challenge, humanize.Time(rec.StartedAt), rec.Correct, rec.Wrong, rec.Errored)
	}
	return nil
}

func runResults(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("results", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("results requires --run-id")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.Results(ctx, *runID)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: qubenchctl <init|reset|list|run|runs|results> [flags]", msg)
}
