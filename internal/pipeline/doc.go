// Package pipeline runs crawl jobs and turns them into reports.
//
// A job goes through a Pipeline of steps that share a Run: PrepareStep
// resolves the target, range and predicate from the job configuration and
// CrawlStep walks the range with crawler.Search, recording every attempt.
// Failures never escape as panics; they end up in the report's Outcome and
// Error fields.
//
// BatchProcessor runs independent jobs concurrently with errgroup and a
// concurrency limit. Each crawl still calls its predicate one candidate at a
// time.
package pipeline
