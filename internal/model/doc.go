// Package model defines the data structures shared by the hoccrawl CLI.
//
// This package contains the following main types:
//   - CrawlReport: The result of running one configured crawl job
//   - Attempt: A single predicate call recorded during a crawl
//   - Outcome: Whether a job found a height, exhausted its range or failed
//   - Summary: Counts across a batch of reports
//
// The models are serializable to JSON for report output.
package model
