package tournamentapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
	"github.com/riskibarqy/group-stage/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL      = "http://localhost:8080"
	defaultRetryBackoff = 200 * time.Millisecond
	maxResponseBytes    = 4 << 20
)

var (
	ErrTransient   = crerr.New("tournament api transient failure")
	ErrUnavailable = crerr.New("tournament api is temporarily unavailable")
)

// APIError is a non-2xx answer decoded from the service error envelope.
type APIError struct {
	StatusCode int
	Status     string
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tournament api status=%d %s: %s", e.StatusCode, e.Status, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	breaker := cfg.CircuitBreaker.Build()
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("tournament api circuit breaker changed state", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      breaker,
	}
}

func (c *Client) RegisterTeam(ctx context.Context, req TeamRequest) (Team, error) {
	return doJSON[Team](ctx, c, http.MethodPost, "/v1/teams", req)
}

func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	return doJSON[[]Team](ctx, c, http.MethodGet, "/v1/teams", nil)
}

func (c *Client) GetTeam(ctx context.Context, name string) (TeamDetails, error) {
	return doJSON[TeamDetails](ctx, c, http.MethodGet, "/v1/teams/"+url.PathEscape(name), nil)
}

func (c *Client) EditTeam(ctx context.Context, oldName string, req TeamRequest) (Team, error) {
	return doJSON[Team](ctx, c, http.MethodPut, "/v1/teams/"+url.PathEscape(oldName), req)
}

func (c *Client) AddMatch(ctx context.Context, req MatchRequest) (Match, error) {
	return doJSON[Match](ctx, c, http.MethodPost, "/v1/matches", req)
}

func (c *Client) ListMatches(ctx context.Context) ([]Match, error) {
	return doJSON[[]Match](ctx, c, http.MethodGet, "/v1/matches", nil)
}

func (c *Client) GetMatch(ctx context.Context, id int64) (Match, error) {
	return doJSON[Match](ctx, c, http.MethodGet, "/v1/matches/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) EditMatch(ctx context.Context, id int64, req MatchRequest) (Match, error) {
	return doJSON[Match](ctx, c, http.MethodPut, "/v1/matches/"+strconv.FormatInt(id, 10), req)
}

func (c *Client) Standings(ctx context.Context) ([]GroupStanding, error) {
	return doJSON[[]GroupStanding](ctx, c, http.MethodGet, "/v1/rankings", nil)
}

func (c *Client) GroupStanding(ctx context.Context, group int) (GroupStanding, error) {
	return doJSON[GroupStanding](ctx, c, http.MethodGet, "/v1/rankings/"+strconv.Itoa(group), nil)
}

func (c *Client) ComputeStandings(ctx context.Context, req ComputeRequest) ([]GroupStanding, error) {
	return doJSON[[]GroupStanding](ctx, c, http.MethodPost, "/v1/rankings", req)
}

func (c *Client) ListLogs(ctx context.Context) ([]LogEntry, error) {
	return doJSON[[]LogEntry](ctx, c, http.MethodGet, "/v1/logs", nil)
}

func (c *Client) RecordLog(ctx context.Context, message string) (LogEntry, error) {
	return doJSON[LogEntry](ctx, c, http.MethodPost, "/v1/logs", map[string]string{"message": message})
}

func (c *Client) ClearAll(ctx context.Context) error {
	_, err := doJSON[map[string]string](ctx, c, http.MethodDelete, "/v1/data", nil)
	return err
}

func doJSON[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var payload []byte
	if body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if err := sonic.ConfigDefault.NewEncoder(buf).Encode(body); err != nil {
			return zero, crerr.Wrap(err, "encode request body")
		}
		payload = buf.B
	}

	var raw []byte
	call := func() error {
		var err error
		raw, err = c.execute(ctx, method, path, payload)
		return err
	}

	err := c.breaker.Execute(call, isTransient)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "tournament api circuit breaker rejected request", "state", string(c.breaker.State()), "path", path)
		return zero, crerr.Wrapf(ErrUnavailable, "%s %s", method, path)
	}
	if err != nil {
		return zero, err
	}

	var out envelope[T]
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return zero, crerr.Wrapf(err, "decode %s %s response", method, path)
	}
	return out.Data, nil
}

// execute sends one logical request. POST is not idempotent, so it is only
// retried when the request never reached the server.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		raw, sent, err := c.roundTrip(req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) || (sent && method == http.MethodPost) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "tournament api request failed", "method", method, "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

// roundTrip reports whether the server answered so callers can tell a lost
// connection from a server-side failure.
func (c *Client) roundTrip(req *http.Request) ([]byte, bool, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, false, req.Context().Err()
		}
		return nil, false, crerr.Mark(crerr.Wrap(err, "send request"), ErrTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, crerr.Mark(crerr.Wrap(err, "read response body"), ErrTransient)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, true, nil
	}

	apiErr := decodeAPIError(resp.StatusCode, raw)
	if isRetryableStatus(resp.StatusCode) {
		return nil, true, crerr.Mark(apiErr, ErrTransient)
	}
	return nil, true, apiErr
}

func decodeAPIError(status int, raw []byte) *APIError {
	out := &APIError{StatusCode: status, Message: abbreviateBody(raw)}

	var body envelope[struct{}]
	if err := sonic.Unmarshal(raw, &body); err != nil || body.Error == nil {
		return out
	}
	out.Status = body.Error.Status
	out.Message = body.Error.Message
	if len(body.Error.Errors) > 0 {
		out.Reason = body.Error.Errors[0].Reason
	}
	return out
}

func isTransient(err error) bool {
	return crerr.Is(err, ErrTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
