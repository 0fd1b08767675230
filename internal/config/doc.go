// Package config provides configuration structures and utilities for hoccrawl.
// It defines the command line options, the YAML job file that describes
// crawl jobs, and the discovery of that file on disk.
package config
