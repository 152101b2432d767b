package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"leetdl/pkg/config"
	apperrors "leetdl/pkg/errors"
	"leetdl/pkg/logger"
)

const (
	// SessionCookie carries the authenticated session
	SessionCookie = "LEETCODE_SESSION"
	// CSRFCookie carries the anti-forgery token, echoed in the x-csrftoken header
	CSRFCookie = "csrftoken"
)

// Client is an authenticated LeetCode session
type Client struct {
	http    *resty.Client
	baseURL string
	logger  logger.Logger
}

// NewClient creates a client that sends the session cookies and headers
// from cfg on every request
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = BaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultTimeoutSeconds) * time.Second
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetCookies([]*http.Cookie{
			{Name: SessionCookie, Value: cfg.LeetCodeSession},
			{Name: CSRFCookie, Value: cfg.CSRFToken},
		}).
		SetHeaders(map[string]string{
			"x-csrftoken":  cfg.CSRFToken,
			"Referer":      baseURL + RefererPath,
			"Content-Type": "application/json",
			"User-Agent":   userAgent,
		})

	c := &Client{
		http:    rc,
		baseURL: baseURL,
		logger:  log,
	}

	rc.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.LogRequest(c.logger, res.Request.Method, res.Request.URL, res.StatusCode(), res.Time().Milliseconds())
		return nil
	})
	rc.OnError(func(req *resty.Request, err error) {
		c.logger.WithError(err).WarnWithFields("HTTP request failed", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	})

	return c
}

// BaseURL returns the origin this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request relative to the base URL
func (c *Client) get(ctx context.Context, path string) (*resty.Response, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorTypeNetwork, err, "GET %s", path)
	}
	return resp, nil
}

// getJSON performs a GET request and decodes a 2xx JSON body into target
func (c *Client) getJSON(ctx context.Context, path string, target interface{}) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if !apperrors.IsSuccessStatusCode(resp.StatusCode()) {
		return apperrors.New(apperrors.ErrorTypeProtocol, resp.StatusCode(), "unexpected status from %s", path)
	}
	return c.decode(path, resp, target)
}

// graphQL posts one named operation and decodes its data member into target
func (c *Client) graphQL(ctx context.Context, operation, query string, variables map[string]interface{}, target interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(graphQLRequest{
			OperationName: operation,
			Variables:     variables,
			Query:         query,
		}).
		Post(GraphQLEndpoint)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeNetwork, err, "graphql %s", operation)
	}
	if !apperrors.IsSuccessStatusCode(resp.StatusCode()) {
		return apperrors.New(apperrors.ErrorTypeProtocol, resp.StatusCode(), "graphql %s returned an unexpected status", operation)
	}

	var envelope graphQLResponse
	if err := c.decode(GraphQLEndpoint, resp, &envelope); err != nil {
		return err
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return apperrors.New(apperrors.ErrorTypeProtocol, resp.StatusCode(), "graphql %s: %s", operation, strings.Join(messages, "; "))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return apperrors.New(apperrors.ErrorTypeProtocol, resp.StatusCode(), "graphql %s returned no data", operation)
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeProtocol, err, "graphql %s returned malformed data", operation)
	}
	return nil
}

func (c *Client) decode(path string, resp *resty.Response, target interface{}) error {
	body := resp.Body()
	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          path,
			"status":       resp.StatusCode(),
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return apperrors.Wrap(apperrors.ErrorTypeProtocol, err, "malformed JSON from %s", path)
	}
	return nil
}
