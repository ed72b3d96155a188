// Package overseerr implements a client for the Overseerr media-request
// API: search, type-specific detail lookup, and request submission.
package overseerr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrAPIKeyMissing = errors.New("Overseerr API key is not configured")
	ErrAPIError      = errors.New("Overseerr API error")
)

// APIError carries the status code and response body of a non-2xx reply.
// It unwraps to ErrAPIError.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Overseerr API error: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrAPIError
}

// Config holds the Overseerr connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout int // seconds
}

// Client is an Overseerr API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// NewClient creates a new Overseerr client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "overseerr").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "overseerr"
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test verifies connectivity to the Overseerr API via the status endpoint.
func (c *Client) Test(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/api/v1/status", c.config.BaseURL)

	var result StatusResponse
	return c.doGet(ctx, endpoint, nil, &result)
}

// Search queries the search endpoint for media matching the free-text
// query. Page and language are fixed.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/api/v1/search", c.config.BaseURL)
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("language", "en")

	var response SearchResponse
	if err := c.doGet(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(response.Results)).
		Msg("search completed")

	return &response, nil
}

// GetDetail fetches full metadata for a media item from the
// type-specific detail endpoint.
func (c *Client) GetDetail(ctx context.Context, mediaType string, id int) (*MediaDetail, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/api/v1/%s/%d", c.config.BaseURL, mediaType, id)

	var detail MediaDetail
	if err := c.doGet(ctx, endpoint, nil, &detail); err != nil {
		return nil, err
	}
	detail.MediaType = mediaType

	c.logger.Debug().
		Str("mediaType", mediaType).
		Int("id", id).
		Str("title", detail.DisplayTitle()).
		Int("seasons", len(detail.Seasons)).
		Msg("got media details")

	return &detail, nil
}

// SubmitRequest posts a media request. Any 2xx reply is returned as a
// status code for the caller to classify; a non-2xx reply is returned as
// an *APIError carrying the upstream body.
func (c *Client) SubmitRequest(ctx context.Context, payload RequestPayload) (int, error) {
	if !c.IsConfigured() {
		return 0, ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/api/v1/request", c.config.BaseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request payload: %w", err)
	}

	c.logger.Debug().RawJSON("payload", body).Msg("submitting media request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, c.apiError(resp)
	}

	return resp.StatusCode, nil
}

// doGet performs an HTTP GET request and decodes the JSON response.
func (c *Client) doGet(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// apiError reads the response body and builds an *APIError. The body is
// kept for diagnostic logging and optional verbose speech output.
func (c *Client) apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("message", errResp.Message).
			Msg("Overseerr API error")
	} else {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Msg("Overseerr API error")
	}

	return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
}
