package leetcode

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	apperrors "leetdl/pkg/errors"
)

// submissionCodePattern matches the escaped source embedded in the
// submission detail page's inline page data
var submissionCodePattern = regexp.MustCompile(`(?s)submissionCode:\s*'(.*?)',\s*editCodeUrl`)

// FetchSubmissionCode downloads the detail page of a submission and returns
// its source code. found is false when the page does not carry the code;
// err is only set for transport failures.
func (c *Client) FetchSubmissionCode(ctx context.Context, submissionID string) (code string, found bool, err error) {
	path := GetSubmissionDetailPath(submissionID)

	resp, err := c.get(ctx, path)
	if err != nil {
		return "", false, err
	}
	if !apperrors.IsSuccessStatusCode(resp.StatusCode()) {
		c.logger.WarnWithFields("Submission page unavailable", map[string]interface{}{
			"submission_id": submissionID,
			"status":        resp.StatusCode(),
		})
		return "", false, nil
	}

	code, found = ExtractSubmissionCode(resp.Body())
	return code, found, nil
}

// ExtractSubmissionCode finds the submissionCode literal in a detail page
// and decodes its escape sequences
func ExtractSubmissionCode(page []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err == nil {
		var raw string
		found := false
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := submissionCodePattern.FindStringSubmatch(s.Text()); m != nil {
				raw = m[1]
				found = true
				return false
			}
			return true
		})
		if found {
			return DecodeEscapes(raw), true
		}
	}

	// the literal is sometimes emitted outside a well-formed script element
	if m := submissionCodePattern.FindSubmatch(page); m != nil {
		return DecodeEscapes(string(m[1])), true
	}
	return "", false
}

// DecodeEscapes interprets backslash escapes the way a string literal would:
// \n \t \r \b \f \v \a \\ \' \" \/, octal \NNN, \xHH, \uHHHH (including
// surrogate pairs) and \UHHHHHHHH. Unknown or truncated escapes are kept
// verbatim. Text that is already UTF-8 passes through unchanged.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}

		next := s[i+1]
		switch next {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'a':
			b.WriteByte('\a')
		case '\\', '\'', '"', '/':
			b.WriteByte(next)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			b.WriteRune(rune(v))
			i = j - 1
			continue
		case 'x':
			if r, ok := parseHex(s, i+2, 2); ok {
				b.WriteRune(r)
				i += 3
				continue
			}
			b.WriteByte(ch)
			continue
		case 'u':
			r, ok := parseHex(s, i+2, 4)
			if !ok {
				b.WriteByte(ch)
				continue
			}
			consumed := 5
			if utf16.IsSurrogate(r) && i+11 < len(s) && s[i+6] == '\\' && s[i+7] == 'u' {
				if low, ok := parseHex(s, i+8, 4); ok {
					if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
						r = pair
						consumed = 11
					}
				}
			}
			b.WriteRune(r)
			i += consumed
			continue
		case 'U':
			if r, ok := parseHex(s, i+2, 8); ok && utf8.ValidRune(r) {
				b.WriteRune(r)
				i += 9
				continue
			}
			b.WriteByte(ch)
			continue
		default:
			b.WriteByte(ch)
			continue
		}
		i++
	}

	return b.String()
}

func parseHex(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
