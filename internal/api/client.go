package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// TokenSource provides the persisted bearer token and clears it when the
// server rejects the session.
type TokenSource interface {
	Token() string
	Clear()
}

// NoToken is a TokenSource for unauthenticated clients.
type NoToken struct{}

func (NoToken) Token() string { return "" }
func (NoToken) Clear()        {}

// Client talks to the LMS API. All durable state lives server-side; the
// client only shapes requests and unwraps responses.
type Client struct {
	baseURL    string
	healthURL  string
	httpClient *http.Client
	tokens     TokenSource
	events     Publisher
	logger     *zap.Logger
	maxRetries int
	retryBase  time.Duration

	Auth        *AuthService
	Courses     *CoursesService
	Lessons     *LessonsService
	Enrollments *EnrollmentsService
	Progress    *ProgressService
	Quiz        *QuizService
	Practice    *PracticeService
	Admin       *AdminService
	Dashboard   *DashboardService
	Health      *HealthService
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the underlying HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithEvents wires the out-of-band event channel to the notification layer.
func WithEvents(p Publisher) Option {
	return func(c *Client) { c.events = p }
}

// WithLogger attaches a structured logger to the transport.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetry overrides the 429 retry budget and backoff seed.
func WithRetry(maxRetries int, base time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBase = base
	}
}

// New builds a Client for the given API base URL, e.g.
// "http://localhost:5038/api". Health probes live at the sibling path with
// the /api prefix stripped.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = NoToken{}
	}
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL:    base,
		healthURL:  strings.TrimSuffix(base, "/api"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		events:     nopPublisher{},
		logger:     zap.NewNop(),
		maxRetries: 3,
		retryBase:  time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c}
	c.Courses = &CoursesService{c}
	c.Lessons = &LessonsService{c}
	c.Enrollments = &EnrollmentsService{c}
	c.Progress = &ProgressService{c}
	c.Quiz = &QuizService{c}
	c.Practice = &PracticeService{c}
	c.Admin = &AdminService{c}
	c.Dashboard = &DashboardService{c}
	c.Health = &HealthService{c}
	return c
}

// envelope is the server's response wrapper. Success is a pointer so that
// plain payloads (no wrapper) can be told apart from enveloped ones.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doURL(ctx, method, c.baseURL+path, body, out)
}

func (c *Client) doURL(ctx context.Context, method, rawURL string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return apperrors.Wrap(err, apperrors.ErrNetwork.Code, 0, apperrors.ErrNetwork.Message)
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		c.logger.Debug("api_request",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt),
			zap.Duration("latency", time.Since(start)),
		)

		if readErr != nil {
			return apperrors.Wrap(readErr, apperrors.ErrNetwork.Code, 0, "read response")
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			// Session is gone. Clear the stored token and tell the
			// front-end to drop to the login screen.
			c.tokens.Clear()
			c.events.Publish(Event{Kind: EventSessionExpired})
			return apperrors.Clone(apperrors.ErrUnauthorized, serverMessage(data))

		case resp.StatusCode == http.StatusTooManyRequests:
			if attempt < c.maxRetries {
				if err := sleep(ctx, c.retryDelay(attempt, resp.Header.Get("Retry-After"))); err != nil {
					return err
				}
				continue
			}
			c.events.Publish(Event{Kind: EventToast, Variant: VariantError, Message: "Too many requests"})
			return apperrors.Clone(apperrors.ErrRateLimited, serverMessage(data))

		case resp.StatusCode >= 400:
			return apperrors.FromStatus(resp.StatusCode, serverMessage(data))
		}

		if out == nil {
			return nil
		}
		return decodeBody(data, out)
	}
}

// retryDelay honours Retry-After (seconds) when present, otherwise backs
// off exponentially from the configured base.
func (c *Client) retryDelay(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return c.retryBase << uint(attempt)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// decodeBody unwraps the {success, data, message} envelope when present and
// decodes plain payloads directly otherwise.
func decodeBody(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Success != nil {
		if len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage pulls the human-readable message out of an error body, in
// either enveloped or bare form. Empty when the server sent none.
func serverMessage(data []byte) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
		return env.Message
	}
	var bare struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &bare); err == nil {
		if bare.Message != "" {
			return bare.Message
		}
		return bare.Error
	}
	return ""
}

func queryPath(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
