package glossary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultEndpoint is the production Translation v3 base URL.
const DefaultEndpoint = "https://translation.googleapis.com/v3/"

// ErrMissingName is returned when a create response decodes without the name
// field identifying the started operation.
var ErrMissingName = errors.New("failed to parse response name field")

// Client issues the three glossary API calls. Every method performs exactly
// one network call; there are no retries.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient builds a client for the given API base URL. The endpoint must end
// with a slash; operation names are appended to it directly.
func NewClient(endpoint, token string, timeout time.Duration, logger zerolog.Logger) *Client {
	base := strings.TrimSpace(endpoint)
	if base == "" {
		base = DefaultEndpoint
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		baseURL:    base,
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Delete removes the named glossary. A 404 means the glossary was already
// absent and is treated as success.
func (c *Client) Delete(ctx context.Context, projectID, glossaryName string) error {
	if c == nil {
		return fmt.Errorf("glossary client is nil")
	}
	url := c.glossariesURL(projectID) + "/" + glossaryName

	status, body, err := c.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	if status == http.StatusNotFound {
		c.logger.Info().
			Str("glossary", glossaryName).
			Msg("glossary does not exist, nothing to delete")
		return nil
	}
	if status >= 300 {
		c.logger.Error().
			Int("status", status).
			Str("body", strings.TrimSpace(string(body))).
			Msg("glossary delete rejected")
		return fmt.Errorf("delete request failed: status %d: %s", status, strings.TrimSpace(string(body)))
	}

	c.logger.Info().
		Str("glossary", glossaryName).
		Msg("existing glossary deleted")
	return nil
}

// Create submits a glossary create request and returns the name of the
// long-running operation the API starts for it.
func (c *Client) Create(ctx context.Context, projectID string, req Request) (string, error) {
	if c == nil {
		return "", fmt.Errorf("glossary client is nil")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal create request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, c.glossariesURL(projectID), payload)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	if status >= 300 {
		c.logger.Error().
			Int("status", status).
			Str("body", strings.TrimSpace(string(body))).
			Msg("glossary create rejected")
		if msg := decodeErrorMessage(body); msg != "" {
			return "", fmt.Errorf("create request failed: status %d: %s", status, msg)
		}
		return "", fmt.Errorf("create request failed: status %d: %s", status, strings.TrimSpace(string(body)))
	}

	var op Operation
	if err := json.Unmarshal(body, &op); err != nil {
		c.logger.Error().
			Str("body", strings.TrimSpace(string(body))).
			Msg("glossary create response did not decode")
		return "", fmt.Errorf("decode create response: %w", ErrMissingName)
	}
	if strings.TrimSpace(op.Name) == "" {
		c.logger.Error().
			Str("body", strings.TrimSpace(string(body))).
			Msg("glossary create response has no operation name")
		return "", ErrMissingName
	}

	c.logger.Info().
		Str("operation", op.Name).
		Msg("glossary create accepted")
	return op.Name, nil
}

// GetOperation fetches one status snapshot of a long-running operation.
// operationName already carries its full resource path.
func (c *Client) GetOperation(ctx context.Context, operationName string) (*Operation, error) {
	if c == nil {
		return nil, fmt.Errorf("glossary client is nil")
	}

	status, body, err := c.do(ctx, http.MethodGet, c.baseURL+operationName, nil)
	if err != nil {
		return nil, fmt.Errorf("operation status request failed: %w", err)
	}
	if status >= 300 {
		c.logger.Error().
			Int("status", status).
			Str("body", strings.TrimSpace(string(body))).
			Msg("operation status rejected")
		if msg := decodeErrorMessage(body); msg != "" {
			return nil, fmt.Errorf("operation status request failed: status %d: %s", status, msg)
		}
		return nil, fmt.Errorf("operation status request failed: status %d: %s", status, strings.TrimSpace(string(body)))
	}

	var op Operation
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("decode operation response: %w", err)
	}
	return &op, nil
}

func (c *Client) glossariesURL(projectID string) string {
	return fmt.Sprintf("%sprojects/%s/locations/%s/glossaries", c.baseURL, projectID, Location)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func decodeErrorMessage(body []byte) string {
	var payload ErrorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error.Message)
}
