// Package client talks to the admin API of a running talent-pipeline server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"talent-pipeline/domain"
	"talent-pipeline/usecase"
)

const (
	contentType = "application/json"
	userAgent   = "talent-pipeline-cli"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string                   `json:"error"`
	Fields     []domain.ValidationError `json:"fields"`
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, domain.ValidationErrors(e.Fields).Error())
}

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(apiURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		token:  token,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIURL: strings.TrimRight(apiURL, "/"),
	}
}

// SetToken replaces the bearer token sent with admin requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login performs the mock admin login and keeps the returned token.
func (c *Client) Login(ctx context.Context, email string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{"email": email}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// ListCandidates returns candidates newest first, optionally filtered by
// stage and search term.
func (c *Client) ListCandidates(ctx context.Context, stage, query string) ([]domain.Candidate, error) {
	q := url.Values{}
	if stage != "" {
		q.Set("stage", stage)
	}
	if query != "" {
		q.Set("q", query)
	}
	var out []domain.Candidate
	if err := c.do(ctx, http.MethodGet, "/candidates", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	var out domain.Candidate
	if err := c.do(ctx, http.MethodGet, "/candidates/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id, status string) (*domain.Candidate, error) {
	var out domain.Candidate
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/candidates/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStage(ctx context.Context, id, stage string) (*domain.Candidate, error) {
	var out domain.Candidate
	body := map[string]string{"pipelineStage": stage}
	if err := c.do(ctx, http.MethodPatch, "/candidates/"+url.PathEscape(id)+"/stage", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pipeline returns the board columns as the server groups them.
func (c *Client) Pipeline(ctx context.Context) ([]usecase.BoardColumn, error) {
	var out []usecase.BoardColumn
	if err := c.do(ctx, http.MethodGet, "/pipeline", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var out domain.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, target any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIURL+path, reader)
	if err != nil {
		return err
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("make request", zap.String("method", method), zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
