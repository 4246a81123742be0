package fsel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fsel/admin-console-api/pkg/httpclient"
	"github.com/fsel/admin-console-api/pkg/logger"
	"github.com/fsel/admin-console-api/pkg/metrics"
	"go.uber.org/zap"
)

// Config holds the gateway base URLs and platform identifiers.
type Config struct {
	AuthBaseURL     string
	UserBaseURL     string
	CourseBaseURL   string
	OrderingBaseURL string

	// SignUpPlatformCode tags self-service account creation ("LMS");
	// AdminPlatformCode tags console operator logins ("LMSAdmin").
	SignUpPlatformCode string
	AdminPlatformCode  string
}

// TokenSource supplies the admin bearer token for authenticated calls.
// Implementations handle caching and expiry; the client just asks.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// APIError is a gateway call failure with the envelope's error already
// flattened to text. StatusCode is the HTTP status (0 when the failure
// happened before a response arrived).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the FSEL gateways. All methods decode the shared response
// envelope and apply the success rule: HTTP 2xx and isOK both required.
type Client struct {
	cfg    Config
	http   httpclient.Client
	tokens TokenSource
}

// NewClient creates a gateway client. tokens may be nil only if no
// authenticated method is ever called.
func NewClient(cfg Config, hc httpclient.Client, tokens TokenSource) *Client {
	if hc == nil {
		hc = httpclient.NewStandardClient()
	}
	return &Client{cfg: cfg, http: hc, tokens: tokens}
}

// SetTokenSource installs the token source after construction. The session
// manager needs the client to log in, so the two are wired in stages.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// call performs one gateway request and decodes the envelope result into out
// (out may be nil for calls whose result is ignored). defaultErr is used when
// the envelope carries no usable error text.
func (c *Client) call(ctx context.Context, gateway, operation, method, url string, body interface{}, authenticated bool, defaultErr string, out interface{}) error {
	startTime := time.Now()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authenticated {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire admin token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestTotal.WithLabelValues(gateway, operation, "error").Inc()
		logger.LogAPICall(ctx, gateway, operation, "error", time.Since(startTime).Seconds(),
			zap.Error(err))
		return &APIError{Message: defaultErr}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestTotal.WithLabelValues(gateway, operation, "error").Inc()
		return &APIError{StatusCode: resp.StatusCode, Message: defaultErr}
	}

	var env Envelope
	if len(raw) > 0 {
		// A body that is not an envelope is treated as an empty one, which
		// fails the isOK check and falls back to defaultErr.
		_ = json.Unmarshal(raw, &env)
	}

	duration := time.Since(startTime).Seconds()
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 && env.IsOK

	status := "success"
	if !ok {
		status = "error"
	}
	metrics.GatewayRequestDuration.WithLabelValues(gateway, operation, status).Observe(duration)
	metrics.GatewayRequestTotal.WithLabelValues(gateway, operation, status).Inc()
	logger.LogAPICall(ctx, gateway, operation, status, duration,
		zap.Int("http_status", resp.StatusCode))

	if !ok {
		return &APIError{StatusCode: resp.StatusCode, Message: env.ErrorText(defaultErr)}
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", operation, err)
		}
	}
	return nil
}
