package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"leetdl/pkg/downloader"
)

// NewTable returns a rounded table writer mirrored to w
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// PrintSummary renders the per-language outcome of a run
func PrintSummary(s *downloader.Summary) {
	if s == nil || IsQuietMode() {
		return
	}
	RenderSummary(Output(), s)
}

// RenderSummary writes the summary table of a run to w
func RenderSummary(w io.Writer, s *downloader.Summary) {
	t := NewTable(w)
	t.SetTitle("leetdl summary")
	t.AppendHeader(table.Row{"Language", "Saved", "Skipped"})

	for _, lang := range s.LanguageNames() {
		stats := s.Languages[lang]
		t.AppendRow(table.Row{lang, stats.Written, stats.Skipped})
	}

	t.AppendFooter(table.Row{"Total", s.Written, s.Skipped})
	t.SetCaption("%d problems in %s (%s), run %s", s.Problems, s.OutputDir, formatDuration(s.Duration), s.RunID)
	t.Render()
}
