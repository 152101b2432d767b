// Package ui provides terminal output for leetdl: colored messages, a
// progress line driven by download events, desktop notifications and the
// run summary table.
package ui
