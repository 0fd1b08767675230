package model

// Outcome is the final state of a crawl job.
type Outcome int

const (
	// OutcomePending is the state of a report no crawl has finished for.
	// Summaries count it as a failure.
	OutcomePending Outcome = iota

	// OutcomeFound indicates the crawl accepted at least one height.
	OutcomeFound

	// OutcomeExhausted indicates the crawl ended without accepting any height.
	OutcomeExhausted

	// OutcomeFailed indicates a configuration error or a predicate failure.
	// The report's Error field holds the message.
	OutcomeFailed
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "PENDING"
	case OutcomeFound:
		return "FOUND"
	case OutcomeExhausted:
		return "EXHAUSTED"
	case OutcomeFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON reports carry the name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
