// Package main provides the entry point for the hoccrawl CLI.
//
// hoccrawl finds the minimum or maximum height of cover accepted by a
// validity check, walking a range of candidate heights and tolerating a
// configurable number of isolated rejections.
//
// Usage:
//
//	hoccrawl crawl --target max --start 2 --stop 20 --max-cover 12
//	hoccrawl batch -c jobs.yaml
//
// See --help for all available options.
package main

// main is the entry point for hoccrawl.
func main() {
	Execute()
}
