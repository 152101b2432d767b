// Package organizer groups accepted submissions by problem and language and
// names the files they are written to.
package organizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"leetdl/pkg/leetcode"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultExtension is used for language codes missing from the table
const DefaultExtension = ".txt"

var extensions = map[string]string{
	"java":       ".java",
	"python":     ".py",
	"python3":    ".py",
	"c":          ".c",
	"c++":        ".cpp",
	"cpp":        ".cpp",
	"rust":       ".rs",
	"go":         ".go",
	"golang":     ".go",
	"javascript": ".js",
	"typescript": ".ts",
	"kotlin":     ".kt",
	"scala":      ".scala",
	"csharp":     ".cs",
	"swift":      ".swift",
	"ruby":       ".rb",
	"php":        ".php",
	"dart":       ".dart",
	"mysql":      ".sql",
	"bash":       ".sh",
}

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single dash, trimming dashes at both ends
func Slugify(s string) string {
	return strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// LanguageDir returns the directory name of a language code
func LanguageDir(lang string) string {
	return strings.ReplaceAll(strings.ToLower(lang), "++", "pp")
}

// Extension returns the solution file extension of a language code
func Extension(lang string) string {
	if ext, ok := extensions[strings.ToLower(lang)]; ok {
		return ext
	}
	return DefaultExtension
}

// SolutionFilename returns the file name of the submission at 1-based rank
func SolutionFilename(rank int, lang string) string {
	return fmt.Sprintf("solution_%d%s", rank, Extension(lang))
}

// LanguageBucket holds the submissions of one language, newest first
type LanguageBucket struct {
	Lang        string
	Submissions []leetcode.Submission
}

// Problem is one output directory worth of submissions
type Problem struct {
	Slug      string
	TitleSlug string
	Title     string
	Languages []LanguageBucket
}

// Count returns the number of submissions across all languages
func (p Problem) Count() int {
	n := 0
	for _, l := range p.Languages {
		n += len(l.Submissions)
	}
	return n
}

// Group buckets submissions by Slugify(titleSlug) and then by language.
// Problems and languages keep the order they were first seen in; each
// bucket is sorted by timestamp, newest first, with ties keeping input order.
func Group(submissions []leetcode.Submission) []Problem {
	var problems []Problem
	problemIndex := make(map[string]int)
	langIndex := make(map[string]map[string]int)

	for _, s := range submissions {
		slug := Slugify(s.TitleSlug)

		pi, ok := problemIndex[slug]
		if !ok {
			pi = len(problems)
			problemIndex[slug] = pi
			langIndex[slug] = make(map[string]int)
			problems = append(problems, Problem{
				Slug:      slug,
				TitleSlug: s.TitleSlug,
				Title:     s.Title,
			})
		}

		p := &problems[pi]
		li, ok := langIndex[slug][s.Lang]
		if !ok {
			li = len(p.Languages)
			langIndex[slug][s.Lang] = li
			p.Languages = append(p.Languages, LanguageBucket{Lang: s.Lang})
		}
		p.Languages[li].Submissions = append(p.Languages[li].Submissions, s)
	}

	for pi := range problems {
		for li := range problems[pi].Languages {
			subs := problems[pi].Languages[li].Submissions
			sort.SliceStable(subs, func(i, j int) bool {
				return subs[i].Timestamp > subs[j].Timestamp
			})
		}
	}

	return problems
}

// Languages returns the distinct language codes of submissions in first-seen order
func Languages(submissions []leetcode.Submission) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, s := range submissions {
		if !seen[s.Lang] {
			seen[s.Lang] = true
			langs = append(langs, s.Lang)
		}
	}
	return langs
}
