package harness

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"qubench/internal/model"
)

const (
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Reporter prints the per-case console report. A nil *Reporter is valid
// and discards everything.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter writes an uncolored report to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// NewConsoleReporter writes to stdout, with color when it is a terminal.
func NewConsoleReporter() *Reporter {
	fd := os.Stdout.Fd()
	return &Reporter{
		w:     os.Stdout,
		color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (r *Reporter) StartCase(index int, input string) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.w, "Running test case %d with input '%s'...\n", index, input)
}

func (r *Reporter) Outcome(o Outcome) {
	if r == nil {
		return
	}
	switch o.Verdict {
	case model.VerdictCorrect:
		fmt.Fprintf(r.w, "%s\n", r.paint(ansiGreen, "Correct!"))
	case model.VerdictWrongAnswer:
		fmt.Fprintf(r.w, "%s\n", r.paint(ansiRed,
			fmt.Sprintf("Wrong Answer. Have: '%s'. Want: '%s'.", o.Have, o.Want)))
	case model.VerdictRuntimeError:
		fmt.Fprintf(r.w, "%s\n", r.paint(ansiYellow, "Runtime Error. "+o.Message))
	}
}

func (r *Reporter) paint(color, text string) string {
	if !r.color {
		return text
	}
	return color + text + ansiReset
}
