package downloader

import (
	"sort"
	"time"
)

// LanguageStats counts the outcome of one language across all problems
type LanguageStats struct {
	Written int
	Skipped int
}

// Summary describes a finished (or aborted) run
type Summary struct {
	RunID     string
	Username  string
	OutputDir string
	Problems  int
	Readmes   int
	Written   int
	Skipped   int
	Languages map[string]*LanguageStats
	Duration  time.Duration

	languageOrder []string
}

func newSummary(runID string) *Summary {
	return &Summary{
		RunID:     runID,
		Languages: make(map[string]*LanguageStats),
	}
}

func (s *Summary) language(lang string) *LanguageStats {
	stats, ok := s.Languages[lang]
	if !ok {
		stats = &LanguageStats{}
		s.Languages[lang] = stats
		s.languageOrder = append(s.languageOrder, lang)
	}
	return stats
}

func (s *Summary) recordWritten(lang string) {
	s.Written++
	s.language(lang).Written++
}

func (s *Summary) recordSkipped(lang string) {
	s.Skipped++
	s.language(lang).Skipped++
}

// LanguageNames returns the languages seen, in first-seen order. Summaries
// built by hand fall back to alphabetical order.
func (s *Summary) LanguageNames() []string {
	if len(s.languageOrder) == len(s.Languages) {
		return append([]string(nil), s.languageOrder...)
	}
	names := make([]string, 0, len(s.Languages))
	for name := range s.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
