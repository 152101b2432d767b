// Package leetcodetest provides an in-process fake of the LeetCode endpoints
// used by leetdl: the login check, the GraphQL submissionList and
// questionData operations, and the submission detail pages.
package leetcodetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf16"
)

const (
	// Session and CSRFToken are the credentials the server accepts by default
	Session   = "test-session"
	CSRFToken = "test-csrf"
	Username  = "tester"
)

// Submission is one entry of the fake submission history
type Submission struct {
	ID        string
	Title     string
	TitleSlug string
	Lang      string
	Status    string
	Timestamp int64
	Code      string
	// OmitCode serves a detail page without the submissionCode literal
	OmitCode bool
}

// Question is the questionData payload for one slug
type Question struct {
	QuestionID string
	Title      string
	Content    string
	Difficulty string
}

// Server simulates the LeetCode web endpoints
type Server struct {
	server *httptest.Server

	mu               sync.RWMutex
	session          string
	csrfToken        string
	username         string
	submissions      []Submission
	questions        map[string]Question
	statusOverrides  map[string]int
	emptyPageHasNext bool

	requestCount int32
	pathCounts   sync.Map
}

// NewServer starts a fake LeetCode server accepting the default credentials
func NewServer() *Server {
	s := &Server{
		session:         Session,
		csrfToken:       CSRFToken,
		username:        Username,
		questions:       make(map[string]Question),
		statusOverrides: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/problems/all/", s.handleLoginCheck)
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/submissions/detail/", s.handleDetail)

	s.server = httptest.NewServer(s.count(mux))
	return s
}

// URL returns the base URL of the server
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts down the server
func (s *Server) Close() {
	s.server.Close()
}

// AddSubmissions appends entries to the history, newest first
func (s *Server) AddSubmissions(subs ...Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, subs...)
}

// SetQuestion registers the questionData payload of a slug
func (s *Server) SetQuestion(slug string, q Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[slug] = q
}

// SetStatus forces a status code for an exact request path
func (s *Server) SetStatus(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusOverrides[path] = code
}

// SetEmptyPageHasNext makes every submissionList page empty with hasNext=true
func (s *Server) SetEmptyPageHasNext(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emptyPageHasNext = v
}

// RequestCount returns the total number of requests served
func (s *Server) RequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// RequestsTo returns how many requests hit the given key. GraphQL calls are
// keyed by operation name, everything else by path.
func (s *Server) RequestsTo(key string) int {
	if v, ok := s.pathCounts.Load(key); ok {
		return int(atomic.LoadInt32(v.(*int32)))
	}
	return 0
}

func (s *Server) hit(key string) {
	v, _ := s.pathCounts.LoadOrStore(key, new(int32))
	atomic.AddInt32(v.(*int32), 1)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.requestCount, 1)
		if r.URL.Path != "/graphql" {
			s.hit(r.URL.Path)
		}

		s.mu.RLock()
		code, forced := s.statusOverrides[r.URL.Path]
		s.mu.RUnlock()
		if forced {
			w.WriteHeader(code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticated(r *http.Request) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := r.Cookie("LEETCODE_SESSION")
	if err != nil || session.Value != s.session {
		return false
	}
	csrf, err := r.Cookie("csrftoken")
	if err != nil || csrf.Value != s.csrfToken {
		return false
	}
	return r.Header.Get("x-csrftoken") == s.csrfToken
}

func (s *Server) handleLoginCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"user_name":         nil,
		"num_solved":        0,
		"stat_status_pairs": []interface{}{},
	}
	if s.authenticated(r) {
		s.mu.RLock()
		body["user_name"] = s.username
		s.mu.RUnlock()
	}
	writeJSON(w, body)
}

type graphQLRequest struct {
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Query         string                 `json:"query"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.hit(req.OperationName)

	switch req.OperationName {
	case "submissionList":
		s.handleSubmissionList(w, r, req.Variables)
	case "questionData":
		s.handleQuestionData(w, req.Variables)
	default:
		writeJSON(w, map[string]interface{}{
			"data":   nil,
			"errors": []map[string]string{{"message": fmt.Sprintf("unknown operation %q", req.OperationName)}},
		})
	}
}

func (s *Server) handleSubmissionList(w http.ResponseWriter, r *http.Request, vars map[string]interface{}) {
	if !s.authenticated(r) {
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"submissionList": nil}})
		return
	}

	offset := intVar(vars, "offset")
	limit := intVar(vars, "limit")

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.emptyPageHasNext {
		writeJSON(w, submissionListBody(nil, true))
		return
	}

	end := offset + limit
	if end > len(s.submissions) {
		end = len(s.submissions)
	}
	var page []Submission
	if offset < end {
		page = s.submissions[offset:end]
	}
	writeJSON(w, submissionListBody(page, end < len(s.submissions)))
}

func submissionListBody(page []Submission, hasNext bool) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(page))
	for _, sub := range page {
		items = append(items, map[string]interface{}{
			"id":            sub.ID,
			"title":         sub.Title,
			"titleSlug":     sub.TitleSlug,
			"lang":          sub.Lang,
			"statusDisplay": sub.Status,
			"timestamp":     strconv.FormatInt(sub.Timestamp, 10),
		})
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"submissionList": map[string]interface{}{
				"hasNext":     hasNext,
				"submissions": items,
			},
		},
	}
}

func (s *Server) handleQuestionData(w http.ResponseWriter, vars map[string]interface{}) {
	slug, _ := vars["titleSlug"].(string)

	s.mu.RLock()
	q, ok := s.questions[slug]
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"question": nil}})
		return
	}
	writeJSON(w, map[string]interface{}{
		"data": map[string]interface{}{
			"question": map[string]interface{}{
				"questionId": q.QuestionID,
				"title":      q.Title,
				"content":    q.Content,
				"difficulty": q.Difficulty,
				"titleSlug":  slug,
			},
		},
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/submissions/detail/"), "/")

	s.mu.RLock()
	var sub *Submission
	for i := range s.submissions {
		if s.submissions[i].ID == id {
			sub = &s.submissions[i]
			break
		}
	}
	s.mu.RUnlock()

	if sub == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if sub.OmitCode {
		fmt.Fprintf(w, detailPageWithoutCode, sub.Title)
		return
	}
	fmt.Fprintf(w, detailPage, sub.Title, EscapeCode(sub.Code), sub.TitleSlug)
}

const detailPage = `<!DOCTYPE html>
<html>
<head><title>%s - LeetCode</title></head>
<body>
<div id="app"></div>
<script>
  var pageData = {
    questionId: '1',
    submissionCode: '%s',
    editCodeUrl: '/problems/%s/',
    runtime: '0 ms',
  };
</script>
</body>
</html>`

const detailPageWithoutCode = `<!DOCTYPE html>
<html>
<head><title>%s - LeetCode</title></head>
<body><div id="app"></div><script>var pageData = {};</script></body>
</html>`

// EscapeCode renders source code the way the detail page embeds it in a
// single-quoted literal: control characters, quotes and non-ASCII runes
// become backslash escapes
func EscapeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r > 0x7e {
				for _, unit := range utf16.Encode([]rune{r}) {
					fmt.Fprintf(&b, `\u%04x`, unit)
				}
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func intVar(vars map[string]interface{}, key string) int {
	switch v := vars[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
