package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/hoccrawler/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose lists every attempt of a job.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the attempt listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one job report.
func (w *SimpleWriter) Write(report *model.CrawlReport) (int, error) {
	var sb strings.Builder
	w.writeHeader(&sb, "HEIGHT OF COVER REPORT")
	w.writeJob(&sb, report)
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs every job followed by a summary.
func (w *SimpleWriter) WriteBatch(reports []*model.CrawlReport) (int, error) {
	reports = nonNil(reports)

	var sb strings.Builder
	w.writeHeader(&sb, "HEIGHT OF COVER BATCH REPORT")
	for _, r := range reports {
		w.writeJob(&sb, r)
		sb.WriteString(strings.Repeat("-", ruleWidth))
		sb.WriteString("\n\n")
	}
	w.writeSummary(&sb, model.Summarize(reports))
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", max(0, (ruleWidth-len(title))/2)))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeJob(sb *strings.Builder, r *model.CrawlReport) {
	fmt.Fprintf(sb, "Job:          %s\n", r.Job)
	fmt.Fprintf(sb, "Target:       %s\n", displayTarget(r.Target))
	fmt.Fprintf(sb, "Range:        %s\n", orDash(r.Range))
	fmt.Fprintf(sb, "Flooded:      %t\n", r.Flooded)
	fmt.Fprintf(sb, "Forgiveness:  %d\n", r.Forgiveness)
	fmt.Fprintf(sb, "Predicate:    %s\n", orDash(r.Predicate))
	fmt.Fprintf(sb, "Status:       %s\n", statusText(r))
	fmt.Fprintf(sb, "Result:       %s\n", r.ResultText())
	fmt.Fprintf(sb, "Attempts:     %d (%d accepted, %d rejected)\n",
		len(r.Attempts), r.AcceptedCount(), r.RejectedCount())
	if r.StopReason != "" {
		fmt.Fprintf(sb, "Stopped by:   %s\n", r.StopReason)
	}
	fmt.Fprintf(sb, "Duration:     %s\n", r.Duration)

	if w.verbose && len(r.Attempts) > 0 {
		sb.WriteString("\n  #    H              VERDICT\n")
		for _, a := range r.Attempts {
			verdict := "rejected"
			if a.Accepted {
				verdict = "accepted"
			}
			fmt.Fprintf(sb, "  %-4s %-14s %s\n", strconv.Itoa(a.Index), a.H, verdict)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, s model.Summary) {
	sb.WriteString("SUMMARY\n")
	fmt.Fprintf(sb, "  Jobs:       %d\n", s.Total)
	fmt.Fprintf(sb, "  Found:      %d\n", s.Found)
	fmt.Fprintf(sb, "  Exhausted:  %d\n", s.Exhausted)
	fmt.Fprintf(sb, "  Failed:     %d\n", s.Failed)
	fmt.Fprintf(sb, "  Attempts:   %d\n", s.Attempts)
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// statusText returns the outcome with the error message, if any.
func statusText(r *model.CrawlReport) string {
	if r.Error != "" {
		return r.Outcome.String() + " - " + r.Error
	}
	return r.Outcome.String()
}
