// Package practicum talks to the homework statuses API.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultEndpoint is the homework statuses endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const maxBodySize = 5 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches homework statuses for a single user.
type Client struct {
	client   HTTPClient
	endpoint string
	token    string
	timeout  time.Duration
	log      *slog.Logger
}

// New creates a Client authorised with the given OAuth token.
func New(client HTTPClient, token string, log *slog.Logger) *Client {
	return &Client{
		client:   client,
		endpoint: DefaultEndpoint,
		token:    token,
		timeout:  30 * time.Second,
		log:      log,
	}
}

// SetEndpoint overrides the default endpoint.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// SetTimeout overrides the default per-request timeout. Zero disables it.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Fetch requests every status change after fromDate and returns the raw JSON
// body. Transport failures, non-200 codes and the API error envelope are
// checked in that order.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	c.log.Debug("requesting homework statuses", "endpoint", c.endpoint, "from_date", fromDate)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: c.endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnexpectedStatusError{Code: resp.StatusCode, Endpoint: c.endpoint, FromDate: fromDate}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Endpoint: c.endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(body) {
		return nil, &DecodeError{Err: fmt.Errorf("body is not valid JSON (%d bytes)", len(body))}
	}
	if err := checkEnvelope(body); err != nil {
		return nil, err
	}

	c.log.Debug("homework statuses received", "bytes", len(body))
	return body, nil
}

// checkEnvelope detects the API error envelope. Bodies that are not JSON
// objects are left for Decode to reject.
func checkEnvelope(body []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil
	}
	rawErr, hasErr := obj["error"]
	rawCode, hasCode := obj["code"]
	if !hasErr && !hasCode {
		return nil
	}
	return &RemoteError{Code: envelopeText(rawCode), Message: envelopeText(rawErr)}
}

// envelopeText renders an envelope value whether it is a string, an object
// with an "error" field, or anything else.
func envelopeText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var nested struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Error != "" {
		return nested.Error
	}
	return string(raw)
}
