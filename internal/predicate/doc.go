// Package predicate provides the built-in validity checks used by the
// hoccrawl command.
//
// Two predicates are available:
//   - Limits accepts heights inside a closed interval, skips an exclusion
//     list and optionally caps the groundwater height of flooded crawls.
//   - Exec delegates the decision to an external program, passing the
//     candidate through environment variables and reading the verdict from
//     its exit status.
//
// Both implement crawler.Predicate. FromConfig builds one from the
// predicate section of a job file.
package predicate
