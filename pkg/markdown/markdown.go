// Package markdown turns a LeetCode problem description into the README
// written next to the solutions.
package markdown

import (
	"fmt"
	"regexp"
)

var (
	preBlock = regexp.MustCompile(`(?s)<pre>(.*?)</pre>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
)

// Question is the input of RenderDescription
type Question struct {
	Title      string
	Difficulty string
	Content    string
}

// RenderDescription builds the README document for a problem. problemURL is
// the canonical link to the problem page.
//
// <pre> blocks become ``` fences and every remaining tag is dropped. HTML
// entities are left as they are.
func RenderDescription(q Question, problemURL string) string {
	doc := fmt.Sprintf("# %s (Difficulty: %s)\n\n[LeetCode Link](%s)\n\n---\n\n%s\n",
		q.Title, q.Difficulty, problemURL, q.Content)
	return StripTags(FencePre(doc))
}

// FencePre replaces every <pre>...</pre> with a ``` fenced block
func FencePre(s string) string {
	return preBlock.ReplaceAllString(s, "```$1```")
}

// StripTags removes every <...> span
func StripTags(s string) string {
	return anyTag.ReplaceAllString(s, "")
}
