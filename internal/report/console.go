package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"mediasort/internal/errors"
	"mediasort/pkg/types"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	// DryRunPrefix is prepended to simulated success lines.
	DryRunPrefix = "[dry-run] "
	// ErrorDelimiter frames a failure block.
	ErrorDelimiter = "-----"
)

// Reporter receives per-file outcomes as the batch progresses.
type Reporter interface {
	Report(outcome types.ProcessingOutcome)
	Summary(summary types.BatchSummary)
}

// Console writes success lines to out and failure blocks to errOut.
type Console struct {
	out         io.Writer
	errOut      io.Writer
	colorOut    bool
	colorErr    bool
	showSummary bool
}

var _ Reporter = (*Console)(nil)

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithSummary enables the table printed after the batch.
func WithSummary(on bool) ConsoleOption {
	return func(c *Console) { c.showSummary = on }
}

// WithColor forces styling on or off regardless of the writers.
func WithColor(on bool) ConsoleOption {
	return func(c *Console) {
		c.colorOut = on
		c.colorErr = on
	}
}

// NewConsole returns a Console over out and errOut, styling markers only
// when the writer is a terminal.
func NewConsole(out, errOut io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		out:      out,
		errOut:   errOut,
		colorOut: shouldColorize(out),
		colorErr: shouldColorize(errOut),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stdio is NewConsole over the process streams.
func Stdio(opts ...ConsoleOption) *Console {
	return NewConsole(os.Stdout, os.Stderr, opts...)
}

// Report prints one outcome.
func (c *Console) Report(o types.ProcessingOutcome) {
	if o.Succeeded() {
		c.success(o)
		return
	}
	c.failure(o)
}

func (c *Console) success(o types.ProcessingOutcome) {
	prefix := ""
	if o.DryRun {
		prefix = paint(DryRunStyle, DryRunPrefix, c.colorOut)
	}
	fmt.Fprintf(c.out, "%s%s %s -> %s\n",
		prefix,
		paint(SuccessStyle, o.Action.Label(), c.colorOut),
		o.SourcePath,
		o.Decision.DestinationPath)
}

func (c *Console) failure(o types.ProcessingOutcome) {
	delim := paint(DelimiterStyle, ErrorDelimiter, c.colorErr)
	fmt.Fprintln(c.errOut, delim)
	fmt.Fprintf(c.errOut, "%s %s\n", paint(ErrorStyle, "[error]", c.colorErr), o.SourcePath)
	fmt.Fprintln(c.errOut, errors.Render(o.Error))
	fmt.Fprintln(c.errOut, delim)
}

// Summary prints the batch table when enabled.
func (c *Console) Summary(s types.BatchSummary) {
	if !c.showSummary {
		return
	}
	fmt.Fprintln(c.out, RenderSummary(s))
}

// RenderSummary formats a batch as a table.
func RenderSummary(s types.BatchSummary) string {
	mode := "live"
	if s.DryRun {
		mode = "dry-run"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Run", "Mode", "Processed", "Succeeded", "Failed"})
	tw.AppendRow(table.Row{
		s.RunID,
		mode,
		strconv.Itoa(len(s.Outcomes)),
		strconv.Itoa(s.Succeeded()),
		strconv.Itoa(s.Failed()),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
