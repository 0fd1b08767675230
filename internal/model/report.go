package model

import (
	"time"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/quantity"
)

// Attempt is one predicate call as it appears in a report.
type Attempt struct {
	Index    int               `json:"index"`
	H        quantity.Quantity `json:"h"`
	Accepted bool              `json:"accepted"`
}

// CrawlReport is the result of running one crawl job.
type CrawlReport struct {
	// Job is the name of the job in the configuration file, or "crawl" for
	// a job built from command line flags.
	Job string `json:"job"`

	// Target is "min" or "max" once validated; the raw input otherwise.
	Target string `json:"target"`

	// Flooded mirrors the job setting.
	Flooded bool `json:"flooded"`

	// Range is the rendered range, e.g. "[2 ft .. 9 ft] step 1 ft".
	Range string `json:"range,omitempty"`

	// Forgiveness is the configured forgiveness level.
	Forgiveness int `json:"forgiveness"`

	// Predicate names the predicate kind ("limits", "exec").
	Predicate string `json:"predicate"`

	// Outcome is the final state of the job.
	Outcome Outcome `json:"outcome"`

	// Result is the height found. Nil unless Outcome is OutcomeFound.
	Result *quantity.Quantity `json:"result,omitempty"`

	// StopReason tells why the walk ended ("range exhausted", ...).
	StopReason string `json:"stop_reason,omitempty"`

	// Error holds the failure message for OutcomeExhausted and OutcomeFailed.
	Error string `json:"error,omitempty"`

	// Attempts lists every predicate call in order.
	Attempts []Attempt `json:"attempts,omitempty"`

	// StartedAt is when the job began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the job ran.
	Duration time.Duration `json:"duration"`
}

// NewCrawlReport creates an empty report for the named job.
func NewCrawlReport(job string) *CrawlReport {
	return &CrawlReport{
		Job:       job,
		StartedAt: time.Now(),
		Attempts:  make([]Attempt, 0),
	}
}

// Record appends a crawl attempt to the report.
func (r *CrawlReport) Record(a crawler.Attempt) {
	r.Attempts = append(r.Attempts, Attempt{
		Index:    a.Index,
		H:        a.H,
		Accepted: a.Verdict == crawler.Accepted,
	})
}

// AcceptedCount returns how many attempts were accepted.
func (r *CrawlReport) AcceptedCount() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Accepted {
			n++
		}
	}
	return n
}

// RejectedCount returns how many attempts were rejected.
func (r *CrawlReport) RejectedCount() int {
	return len(r.Attempts) - r.AcceptedCount()
}

// Succeeded reports whether the job found a height.
func (r *CrawlReport) Succeeded() bool {
	return r.Outcome == OutcomeFound
}

// ResultText returns the found height, or "-" when there is none.
func (r *CrawlReport) ResultText() string {
	if r.Result == nil {
		return "-"
	}
	return r.Result.String()
}

// Summary aggregates a batch of reports.
type Summary struct {
	Total     int `json:"total"`
	Found     int `json:"found"`
	Exhausted int `json:"exhausted"`
	Failed    int `json:"failed"`
	Attempts  int `json:"attempts"`
}

// Summarize counts outcomes across reports. Nil entries are skipped.
func Summarize(reports []*CrawlReport) Summary {
	var s Summary
	for _, r := range reports {
		if r == nil {
			continue
		}
		s.Total++
		s.Attempts += len(r.Attempts)
		switch r.Outcome {
		case OutcomeFound:
			s.Found++
		case OutcomeExhausted:
			s.Exhausted++
		default:
			s.Failed++
		}
	}
	return s
}

// HasFailures reports whether any job did not find a height.
func (s Summary) HasFailures() bool {
	return s.Exhausted+s.Failed > 0
}
