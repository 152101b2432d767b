package downloader

import (
	"context"

	"leetdl/pkg/leetcode"
)

// CodeFetcher retrieves the source of one submission. found is false when
// the source could not be located; err is reserved for failures that must
// stop the run.
type CodeFetcher interface {
	FetchSubmissionCode(ctx context.Context, submissionID string) (code string, found bool, err error)
}

// LeetCodeClient defines the LeetCode operations a run needs
type LeetCodeClient interface {
	CodeFetcher
	VerifyLogin(ctx context.Context) (string, error)
	ListAcceptedSubmissions(ctx context.Context) ([]leetcode.Submission, error)
	FetchQuestion(ctx context.Context, titleSlug string) (*leetcode.Question, error)
}

// Progress receives events as the tree is written
type Progress interface {
	Start(problems, submissions int)
	StartProblem(slug string)
	SolutionSaved(path string, size int64)
	SolutionSkipped(problem, submissionID string)
	Complete()
}

type nopProgress struct{}

func (nopProgress) Start(int, int)                 {}
func (nopProgress) StartProblem(string)            {}
func (nopProgress) SolutionSaved(string, int64)    {}
func (nopProgress) SolutionSkipped(string, string) {}
func (nopProgress) Complete()                      {}
