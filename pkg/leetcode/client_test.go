package leetcode

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetdl/internal/leetcodetest"
	"leetdl/pkg/config"
	apperrors "leetdl/pkg/errors"
	"leetdl/pkg/logger"
)

func newTestClient(t *testing.T, srv *leetcodetest.Server, session string) (*Client, *logger.TestLogger) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.BaseURL = srv.URL()
	cfg.LeetCodeSession = session
	cfg.CSRFToken = leetcodetest.CSRFToken
	cfg.OutputDir = t.TempDir()

	log := logger.NewTestLogger()
	return NewClient(cfg, log), log
}

func TestNewClient(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BaseURL = "https://example.test/"

	client := NewClient(cfg, logger.NewTestLogger())

	require.NotNil(t, client)
	assert.Equal(t, "https://example.test", client.BaseURL())
}

func TestVerifyLogin(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()

	t.Run("valid session", func(t *testing.T) {
		client, log := newTestClient(t, srv, leetcodetest.Session)

		username, err := client.VerifyLogin(context.Background())
		require.NoError(t, err)
		assert.Equal(t, leetcodetest.Username, username)
		assert.True(t, log.HasMessage("Login successful"))
	})

	t.Run("invalid session", func(t *testing.T) {
		client, _ := newTestClient(t, srv, "expired")

		_, err := client.VerifyLogin(context.Background())
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeAuth, apperrors.TypeOf(err))
	})
}

func TestVerifyLoginServerError(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetStatus(LoginCheckEndpoint, http.StatusInternalServerError)

	client, log := newTestClient(t, srv, leetcodetest.Session)

	_, err := client.VerifyLogin(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeAuth, apperrors.TypeOf(err))
	assert.NotEmpty(t, log.GetMessagesByLevel("ERROR"), "5xx response should be logged at error level")
}

func TestListAcceptedSubmissionsPaginates(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()

	// 45 entries span three pages of 20
	for i := 0; i < 45; i++ {
		status := "Accepted"
		if i%3 == 0 {
			status = "Wrong Answer"
		}
		srv.AddSubmissions(leetcodetest.Submission{
			ID:        fmt.Sprintf("%d", 1000-i),
			Title:     "Two Sum",
			TitleSlug: "two-sum",
			Lang:      "python3",
			Status:    status,
			Timestamp: int64(1700000000 - i),
		})
	}

	client, _ := newTestClient(t, srv, leetcodetest.Session)

	subs, err := client.ListAcceptedSubmissions(context.Background())
	require.NoError(t, err)

	assert.Len(t, subs, 30)
	assert.Equal(t, 3, srv.RequestsTo("submissionList"))
	for _, s := range subs {
		assert.True(t, s.IsAccepted())
	}
	assert.Equal(t, "999", subs[0].ID.String())
	assert.Equal(t, Timestamp(1699999999), subs[0].Timestamp)
}

func TestListAcceptedSubmissionsEmptyHistory(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()

	client, _ := newTestClient(t, srv, leetcodetest.Session)

	subs, err := client.ListAcceptedSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.Equal(t, 1, srv.RequestsTo("submissionList"))
}

func TestListAcceptedSubmissionsEmptyPageWithNext(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetEmptyPageHasNext(true)

	client, _ := newTestClient(t, srv, leetcodetest.Session)

	_, err := client.ListAcceptedSubmissions(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeProtocol, apperrors.TypeOf(err))
	assert.Equal(t, 1, srv.RequestsTo("submissionList"))
}

func TestListAcceptedSubmissionsUnauthenticated(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()

	client, _ := newTestClient(t, srv, "expired")

	_, err := client.ListAcceptedSubmissions(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeProtocol, apperrors.TypeOf(err))
}

func TestListAcceptedSubmissionsCancelled(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()

	client, _ := newTestClient(t, srv, leetcodetest.Session)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListAcceptedSubmissions(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchQuestion(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetQuestion("two-sum", leetcodetest.Question{
		QuestionID: "1",
		Title:      "Two Sum",
		Content:    "<p>Given an array</p>",
		Difficulty: "Easy",
	})

	client, _ := newTestClient(t, srv, leetcodetest.Session)

	q, err := client.FetchQuestion(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", q.Title)
	assert.Equal(t, "Easy", q.Difficulty)
	assert.Equal(t, "two-sum", q.TitleSlug)

	_, err = client.FetchQuestion(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeProtocol, apperrors.TypeOf(err))
}

func TestFetchSubmissionCode(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.AddSubmissions(
		leetcodetest.Submission{ID: "1", TitleSlug: "two-sum", Lang: "python3", Status: "Accepted",
			Code: "class Solution:\n\tdef twoSum(self):\n\t\treturn 'ok'  # héllo"},
		leetcodetest.Submission{ID: "2", TitleSlug: "two-sum", Lang: "python3", Status: "Accepted", OmitCode: true},
		leetcodetest.Submission{ID: "3", TitleSlug: "two-sum", Lang: "python3", Status: "Accepted", Code: "x"},
	)
	srv.SetStatus(GetSubmissionDetailPath("3"), http.StatusForbidden)

	client, _ := newTestClient(t, srv, leetcodetest.Session)
	ctx := context.Background()

	code, found, err := client.FetchSubmissionCode(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "class Solution:\n\tdef twoSum(self):\n\t\treturn 'ok'  # héllo", code)

	_, found, err = client.FetchSubmissionCode(ctx, "2")
	require.NoError(t, err)
	assert.False(t, found, "page without the literal is a miss")

	_, found, err = client.FetchSubmissionCode(ctx, "3")
	require.NoError(t, err)
	assert.False(t, found, "non-2xx page is a miss")

	_, found, err = client.FetchSubmissionCode(ctx, "404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFetchSubmissionCodeTransportError(t *testing.T) {
	srv := leetcodetest.NewServer()
	client, _ := newTestClient(t, srv, leetcodetest.Session)
	srv.Close()

	_, found, err := client.FetchSubmissionCode(context.Background(), "1")
	require.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, apperrors.ErrorTypeNetwork, apperrors.TypeOf(err))
}
