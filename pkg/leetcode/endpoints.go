package leetcode

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the LeetCode origin
	BaseURL = "https://leetcode.com"

	// GraphQLEndpoint serves the submissionList and questionData operations
	GraphQLEndpoint = "/graphql"

	// LoginCheckEndpoint only reports a user_name for authenticated sessions
	LoginCheckEndpoint = "/api/problems/all/"

	// RefererPath is sent as the Referer header on every request
	RefererPath = "/problemset/all/"

	// PageSize is the submissionList window size
	PageSize = 20

	// StatusAccepted is the statusDisplay label of an accepted submission
	StatusAccepted = "Accepted"
)

const submissionListQuery = `
query submissionList($offset: Int!, $limit: Int!) {
  submissionList(offset: $offset, limit: $limit) {
    hasNext
    submissions {
      id
      title
      titleSlug
      lang
      statusDisplay
      timestamp
    }
  }
}`

const questionDataQuery = `
query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    title
    content
    difficulty
    titleSlug
  }
}`

// GetSubmissionDetailPath returns the server-rendered page of one submission
func GetSubmissionDetailPath(submissionID string) string {
	return fmt.Sprintf("/submissions/detail/%s/", url.PathEscape(submissionID))
}

// GetProblemURL returns the canonical link of a problem
func GetProblemURL(baseURL, titleSlug string) string {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return fmt.Sprintf("%s/problems/%s/", strings.TrimRight(baseURL, "/"), titleSlug)
}
