package report

import (
	"io"
	"strconv"

	"github.com/nao1215/hoccrawler/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format for sharing and
// documentation. It uses GitHub-flavored alerts for the outcome.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs one job report.
func (w *MarkdownWriter) Write(report *model.CrawlReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Height of Cover Report")
	md.PlainText("")
	w.writeJob(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a summary, an outcome chart and one section per job.
func (w *MarkdownWriter) WriteBatch(reports []*model.CrawlReport) (int, error) {
	reports = nonNil(reports)
	summary := model.Summarize(reports)
	md := markdown.NewMarkdown(w.output)

	md.H1("Height of Cover Batch Report")
	md.PlainText("")
	w.writeSummary(md, reports, summary)

	for _, r := range reports {
		md.H2(r.Job)
		md.PlainText("")
		w.writeJob(md, r)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeSummary writes the results table, the pie chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, reports []*model.CrawlReport, s model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			"`" + r.Job + "`",
			displayTarget(r.Target),
			r.ResultText(),
			outcomeText(r.Outcome),
			strconv.Itoa(len(r.Attempts)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Job", "Target", "Result", "Outcome", "Attempts"},
		Rows:   rows,
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}

	switch {
	case s.Failed > 0:
		md.Cautionf("%d of %d job(s) failed. See the error of each job below.", s.Failed, s.Total)
	case s.Exhausted > 0:
		md.Warningf("%d of %d job(s) found no valid height of cover.", s.Exhausted, s.Total)
	case s.Total > 0:
		md.Tipf("All %d job(s) found a height of cover.", s.Total)
	default:
		md.Note("No jobs were run.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of job outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Job Outcomes"),
		piechart.WithShowData(true),
	)

	if s.Found > 0 {
		chart.LabelAndIntValue("Found", uint64(s.Found))
	}
	if s.Exhausted > 0 {
		chart.LabelAndIntValue("Exhausted", uint64(s.Exhausted))
	}
	if s.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(s.Failed))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeJob writes the property table, the outcome alert and the attempts.
func (w *MarkdownWriter) writeJob(md *markdown.Markdown, r *model.CrawlReport) {
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Job", "`" + r.Job + "`"},
			{"Target", displayTarget(r.Target)},
			{"Range", orDash(r.Range)},
			{"Flooded", strconv.FormatBool(r.Flooded)},
			{"Forgiveness", strconv.Itoa(r.Forgiveness)},
			{"Predicate", orDash(r.Predicate)},
			{"Outcome", outcomeText(r.Outcome)},
			{"Result", "**" + r.ResultText() + "**"},
			{"Stopped by", orDash(r.StopReason)},
			{"Started", r.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", r.Duration.String()},
		},
	})
	md.PlainText("")

	switch r.Outcome {
	case model.OutcomeFound:
		md.Tipf("%s height of cover: %s", displayTarget(r.Target), r.ResultText())
	case model.OutcomeExhausted:
		md.Warning(r.Error)
	default:
		md.Caution(orDash(r.Error))
	}
	md.PlainText("")

	if len(r.Attempts) == 0 {
		return
	}
	rows := make([][]string, len(r.Attempts))
	for i, a := range r.Attempts {
		verdict := "❌ rejected"
		if a.Accepted {
			verdict = "✅ accepted"
		}
		rows[i] = []string{strconv.Itoa(a.Index), a.H.String(), verdict}
	}
	md.H3("Attempts")
	md.PlainText("")
	md.Table(markdown.TableSet{Header: []string{"#", "H", "Verdict"}, Rows: rows})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by hoccrawl*")
}

// outcomeText decorates an outcome for display.
func outcomeText(o model.Outcome) string {
	switch o {
	case model.OutcomeFound:
		return "✅ " + o.String()
	case model.OutcomeExhausted:
		return "⚠️ " + o.String()
	default:
		return "❌ " + o.String()
	}
}
