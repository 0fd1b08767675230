// Package report writes crawl reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with tables, alerts and a mermaid pie chart
//
// Writers implement the Writer interface, so they can be used
// interchangeably and combined with MultiWriter. Each writer renders either
// a single job (Write) or a whole batch with its summary (WriteBatch).
package report
