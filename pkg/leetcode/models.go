package leetcode

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Submission is one graded attempt as returned by submissionList
type Submission struct {
	ID            json.Number `json:"id"`
	Title         string      `json:"title"`
	TitleSlug     string      `json:"titleSlug"`
	Lang          string      `json:"lang"`
	StatusDisplay string      `json:"statusDisplay"`
	Timestamp     Timestamp   `json:"timestamp"`
}

// IsAccepted reports whether the judge marked the submission fully correct
func (s Submission) IsAccepted() bool {
	return s.StatusDisplay == StatusAccepted
}

// Timestamp is a unix time in seconds. The API sends it as a quoted string.
type Timestamp int64

// UnmarshalJSON accepts both "1700000000" and 1700000000
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*t = 0
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", raw, err)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", raw, err)
	}
	*t = Timestamp(v)
	return nil
}

// SubmissionPage is one window of the submissionList query
type SubmissionPage struct {
	HasNext     bool         `json:"hasNext"`
	Submissions []Submission `json:"submissions"`
}

type submissionListData struct {
	SubmissionList *SubmissionPage `json:"submissionList"`
}

// Question is the subset of questionData used to render a README
type Question struct {
	QuestionID string `json:"questionId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Difficulty string `json:"difficulty"`
	TitleSlug  string `json:"titleSlug"`
}

type questionData struct {
	Question *Question `json:"question"`
}

// graphQLRequest is the POST body of every GraphQL call
type graphQLRequest struct {
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Query         string                 `json:"query"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// loginStatus is the part of /api/problems/all/ the login check reads
type loginStatus struct {
	UserName *string `json:"user_name"`
}
