// Package log builds the slog loggers used by hoccrawl.
//
// Crawl jobs may carry credentials: an exec predicate often needs a licence
// key or a service token in its environment, and job parameters are
// forwarded verbatim. SecureHandler wraps any slog.Handler and masks
// attributes whose key or value looks secret before they reach the output,
// including attributes nested in groups.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("running predicate command",
//	    slog.Group("env", "LICENSE_TOKEN", "abc123"), // masked
//	)
package log
