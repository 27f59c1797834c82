package economy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/metrics"
	"github.com/osse101/PointStore_Go/internal/session"
)

// Client is the typed request layer over the economy authority.
// Every method is a single logical call; retries happen inside.
type Client interface {
	GetProfile(ctx context.Context) (domain.Profile, error)

	GetInventory(ctx context.Context) ([]domain.InventoryEntry, error)
	UseItem(ctx context.Context, entryID int64, extraValue string) error
	CancelItem(ctx context.Context, entryID int64) error
	DiscardItem(ctx context.Context, entryID int64) error

	DrawIcon(ctx context.Context, entryID int64) (domain.DrawResult, error)
	GetIconCatalog(ctx context.Context) ([]domain.Icon, error)
	GetOwnedIcons(ctx context.Context) ([]domain.OwnedIcon, error)
	EquipIcon(ctx context.Context, iconID int64) error
	UnequipIcon(ctx context.Context) error

	SpinRoulette(ctx context.Context) (int, error)

	GetHistory(ctx context.Context, page int, filter domain.HistoryFilter) (domain.LedgerPage, error)

	GetWishlist(ctx context.Context) ([]domain.WishlistEntry, error)
	RemoveWish(ctx context.Context, itemID int64) error

	GetAttendance(ctx context.Context) ([]domain.AttendanceDay, error)
}

// Options configures an APIClient
type Options struct {
	BaseURL      string
	APIKey       string
	SessionToken *session.Token

	// Timeout bounds each attempt, not the whole call
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration

	IconCacheSize int
	IconCacheTTL  time.Duration

	HTTPClient *http.Client
}

// DefaultOptions returns options with the standard retry and cache policy
func DefaultOptions(baseURL string) Options {
	return Options{
		BaseURL:       baseURL,
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		RetryInterval: DefaultRetryInterval,
		IconCacheSize: DefaultIconCacheSize,
		IconCacheTTL:  DefaultIconCacheTTL,
	}
}

// APIClient handles communication with the economy authority
type APIClient struct {
	baseURL       string
	apiKey        string
	token         *session.Token
	timeout       time.Duration
	maxRetries    int
	retryInterval time.Duration
	httpClient    *http.Client
	icons         *iconCache
	now           func() time.Time
}

var _ Client = (*APIClient)(nil)

// NewAPIClient creates a new API client
func NewAPIClient(opts Options) *APIClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.IconCacheSize <= 0 {
		opts.IconCacheSize = DefaultIconCacheSize
	}
	if opts.IconCacheTTL <= 0 {
		opts.IconCacheTTL = DefaultIconCacheTTL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &APIClient{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		apiKey:        opts.APIKey,
		token:         opts.SessionToken,
		timeout:       opts.Timeout,
		maxRetries:    opts.MaxRetries,
		retryInterval: opts.RetryInterval,
		httpClient:    httpClient,
		icons:         newIconCache(opts.IconCacheSize, opts.IconCacheTTL),
		now:           time.Now,
	}
}

// call describes one logical request
type call struct {
	op       string
	method   string
	path     string
	query    url.Values
	body     any
	mutation bool
}

// do performs a call with retry logic and returns the raw 2xx body.
// Reads retry on transport errors, 429 and 5xx. Mutations retry on transport
// errors and 5xx only, reusing one Idempotency-Key across attempts.
func (c *APIClient) do(ctx context.Context, cl call) ([]byte, error) {
	start := time.Now()
	ctx, requestID := logger.EnsureRequestID(ctx)
	log := logger.FromContext(ctx).With("op", cl.op)

	body, err := c.execute(ctx, cl, requestID, log)

	metrics.AuthorityRequests.WithLabelValues(cl.op, metrics.Outcome(err)).Inc()
	metrics.AuthorityRequestDuration.WithLabelValues(cl.op).Observe(time.Since(start).Seconds())
	if err == nil {
		log.Debug(LogMsgRequestDone, "path", cl.path, "duration", time.Since(start))
	}
	return body, err
}

func (c *APIClient) execute(ctx context.Context, cl call, requestID string, log *slog.Logger) ([]byte, error) {
	if err := c.token.Check(c.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", cl.op, err)
	}

	var payload []byte
	if cl.body != nil {
		var err error
		payload, err = json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgMarshalBodyFailed, err)
		}
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	idempotencyKey := ""
	if cl.mutation {
		idempotencyKey = uuid.NewString()
	}

	var (
		respBody   []byte
		lastStatus int
	)
	operation := func() error {
		status, data, err := c.attempt(ctx, cl.method, target, payload, requestID, idempotencyKey)
		lastStatus = status
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		switch {
		case status >= http.StatusOK && status < http.StatusMultipleChoices:
			respBody = data
			return nil
		case status >= http.StatusInternalServerError:
			return fmt.Errorf(ErrMsgServerError, status)
		case status == http.StatusTooManyRequests && !cl.mutation:
			return fmt.Errorf(ErrMsgRateLimited, status)
		default:
			return backoff.Permanent(&domain.DomainError{Op: cl.op, Status: status, Reason: errorReason(status, data)})
		}
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), ctx)
	err := backoff.RetryNotify(operation, b, func(err error, delay time.Duration) {
		metrics.AuthorityRetries.WithLabelValues(cl.op).Inc()
		log.Info(LogMsgRetrying, "path", cl.path, "error", err, "delay", delay)
	})
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return nil, de
		}
		log.Warn(LogMsgRequestFailed, "path", cl.path, "status", lastStatus, "error", err)
		return nil, &domain.TransportError{Op: cl.op, Status: lastStatus, Err: err}
	}
	return respBody, nil
}

// attempt sends one HTTP request bounded by the per-request timeout
func (c *APIClient) attempt(ctx context.Context, method, target string, payload []byte, requestID, idempotencyKey string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, backoff.Permanent(fmt.Errorf(ErrMsgCreateRequestFailed, err))
	}

	if payload != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if c.apiKey != "" {
		req.Header.Set(HeaderAPIKey, c.apiKey)
	}
	if c.token != nil {
		req.Header.Set(HeaderAuthorization, BearerPrefix+c.token.Raw())
	}
	req.Header.Set(HeaderRequestID, requestID)
	if idempotencyKey != "" {
		req.Header.Set(HeaderIdempotencyKey, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf(ErrMsgReadBodyFailed, err)
	}
	return resp.StatusCode, data, nil
}

func (c *APIClient) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = DefaultMaxRetryBackoff
	b.MaxElapsedTime = 0
	return b
}

// errorReason extracts {"message"} or {"error"} from an error body
func errorReason(status int, data []byte) string {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}

	text := bodyText(data)
	if reason, ok := strings.CutPrefix(text, domain.ResponseFailPrefix); ok {
		text = strings.TrimSpace(reason)
	}
	if text != "" && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}
	if statusText := http.StatusText(status); statusText != "" {
		return statusText
	}
	return fmt.Sprintf(ErrMsgUnexpectedStatus, status)
}

// bodyText returns the body as text, unquoting a bare JSON string
func bodyText(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(trimmed)
}

// failSentinel reports a "fail:<reason>" body as a domain error
func failSentinel(op string, data []byte) error {
	reason, ok := strings.CutPrefix(bodyText(data), domain.ResponseFailPrefix)
	if !ok {
		return nil
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultFailReason
	}
	return &domain.DomainError{Op: op, Status: http.StatusOK, Reason: reason}
}

// parseSentinel interprets the "success" / "fail:<reason>" mutation response.
// An empty body is treated as success.
func parseSentinel(op string, data []byte) error {
	if err := failSentinel(op, data); err != nil {
		return err
	}
	text := bodyText(data)
	if text == "" || strings.EqualFold(text, domain.ResponseSuccess) {
		return nil
	}
	return fmt.Errorf(ErrMsgUnexpectedPayloadFmt, op, domain.ErrUnexpectedPayload, text)
}

// decode unmarshals a 2xx body, honouring a fail sentinel in its place
func decode[T any](op string, data []byte) (T, error) {
	var out T
	if err := failSentinel(op, data); err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf(ErrMsgDecodeFailed, op, errors.Join(domain.ErrUnexpectedPayload, err))
	}
	return out, nil
}
