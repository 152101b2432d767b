package leetcode

import (
	"context"

	apperrors "leetdl/pkg/errors"
)

// VerifyLogin checks that the session cookies belong to a signed-in user
// and returns the username
func (c *Client) VerifyLogin(ctx context.Context) (string, error) {
	var status loginStatus
	if err := c.getJSON(ctx, LoginCheckEndpoint, &status); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
			return "", err
		}
		return "", apperrors.Wrap(apperrors.ErrorTypeAuth, err, "login check failed")
	}

	if status.UserName == nil || *status.UserName == "" {
		return "", apperrors.New(apperrors.ErrorTypeAuth, 0, "login failed, check leetcode_session and csrftoken")
	}

	c.logger.WithField("username", *status.UserName).Info("Login successful")
	return *status.UserName, nil
}

// FetchSubmissionPage returns one window of the submission history, newest first
func (c *Client) FetchSubmissionPage(ctx context.Context, offset, limit int) (*SubmissionPage, error) {
	var data submissionListData
	err := c.graphQL(ctx, "submissionList", submissionListQuery, map[string]interface{}{
		"offset": offset,
		"limit":  limit,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.SubmissionList == nil {
		return nil, apperrors.New(apperrors.ErrorTypeProtocol, 0, "submissionList missing at offset %d", offset)
	}
	return data.SubmissionList, nil
}

// ListAcceptedSubmissions walks every page of the history and keeps the
// accepted submissions in server order
func (c *Client) ListAcceptedSubmissions(ctx context.Context) ([]Submission, error) {
	var accepted []Submission
	offset := 0

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := c.FetchSubmissionPage(ctx, offset, PageSize)
		if err != nil {
			return nil, err
		}
		if batch.HasNext && len(batch.Submissions) == 0 {
			return nil, apperrors.New(apperrors.ErrorTypeProtocol, 0, "empty submission page %d reports more pages", page)
		}

		kept := FilterAccepted(batch.Submissions)
		accepted = append(accepted, kept...)

		c.logger.DebugWithFields("Fetched submission page", map[string]interface{}{
			"page":     page,
			"offset":   offset,
			"raw":      len(batch.Submissions),
			"accepted": len(kept),
			"has_next": batch.HasNext,
		})

		if !batch.HasNext {
			break
		}
		offset += PageSize
	}

	c.logger.WithField("count", len(accepted)).Info("Accepted submissions listed")
	return accepted, nil
}

// FilterAccepted keeps accepted submissions, preserving order
func FilterAccepted(submissions []Submission) []Submission {
	kept := make([]Submission, 0, len(submissions))
	for _, s := range submissions {
		if s.IsAccepted() {
			kept = append(kept, s)
		}
	}
	return kept
}

// FetchQuestion returns the metadata of the problem with the given slug
func (c *Client) FetchQuestion(ctx context.Context, titleSlug string) (*Question, error) {
	var data questionData
	err := c.graphQL(ctx, "questionData", questionDataQuery, map[string]interface{}{
		"titleSlug": titleSlug,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Question == nil {
		return nil, apperrors.New(apperrors.ErrorTypeProtocol, 0, "question %s not found", titleSlug)
	}
	return data.Question, nil
}
