package tourapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production KorService2 endpoint.
const DefaultBaseURL = "https://apis.data.go.kr/B551011/KorService2"

const (
	// DefaultMaxRetries bounds retries per logical call.
	DefaultMaxRetries = 3
	// DefaultTimeout bounds a single attempt.
	DefaultTimeout = 10 * time.Second

	// Backoff schedule: baseBackoff*2^attempt, capped at maxBackoff.
	baseBackoff = time.Second
	maxBackoff  = 5 * time.Second

	// Fixed client-identification constants required on every call.
	mobileOS       = "ETC"
	defaultAppName = "MyTrip"
	responseFormat = "json"

	// resultCodeOK is the upstream success sentinel.
	resultCodeOK = "0000"
)

// Client calls the KorService2 API with retries, per-attempt timeouts,
// rate limiting and response caching.
type Client struct {
	baseURL        string
	serviceKey     string
	appName        string
	httpClient     *http.Client
	logger         zerolog.Logger
	cache          Cache
	limiter        *rate.Limiter
	maxRetries     int
	attemptTimeout time.Duration

	// sleep is replaced in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a tour API client. The service key comes from
// configuration; a missing key is a configuration error, not something
// to discover one failed call at a time.
func NewClient(serviceKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if serviceKey == "" {
		return nil, ErrMissingServiceKey
	}

	client := &Client{
		baseURL:        DefaultBaseURL,
		serviceKey:     serviceKey,
		appName:        defaultAppName,
		httpClient:     &http.Client{},
		logger:         logger,
		cache:          NewMemoryCache(),
		maxRetries:     DefaultMaxRetries,
		attemptTimeout: DefaultTimeout,
		sleep:          sleepContext,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// TestConnection performs a minimal area-code lookup to verify the base
// URL and service key.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.AreaCodes(ctx, AreaCodeParams{NumOfRows: 1})
	return err
}

// buildQuery assembles the final query string: fixed identification
// constants, the service key, and the operation parameters. Empty
// values are treated as absent and omitted.
func (c *Client) buildQuery(params map[string]string) string {
	values := url.Values{}
	values.Set("serviceKey", c.serviceKey)
	values.Set("MobileOS", mobileOS)
	values.Set("MobileApp", c.appName)
	values.Set("_type", responseFormat)

	for key, value := range params {
		if value != "" {
			values.Set(key, value)
		}
	}

	return values.Encode()
}

// cacheKey identifies a logical request. The service key is excluded so
// a rotated key does not fragment the cache.
func cacheKey(operation string, params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		if value != "" {
			values.Set(key, value)
		}
	}
	return operation + "?" + values.Encode()
}

// backoffDelay computes the sleep before retry number attempt+1,
// zero-indexed: 1s, 2s, 4s, then capped at 5s.
func backoffDelay(attempt int) time.Duration {
	delay := baseBackoff << attempt
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	return delay
}

// sleepContext sleeps for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// fetchEnvelope performs one logical API call: cache lookup, then up to
// maxRetries+1 attempts with exponential backoff, storing the raw body
// on success. Retry state lives entirely within this call.
func fetchEnvelope[T any](ctx context.Context, c *Client, operation string, params map[string]string, ttl time.Duration) (*Envelope[T], error) {
	key := cacheKey(operation, params)

	if c.cache != nil && ttl > 0 {
		if body, ok := c.cache.Get(ctx, key); ok {
			env := new(Envelope[T])
			if err := json.Unmarshal(body, env); err == nil {
				c.logger.Debug().Str("operation", operation).Msg("tour API cache hit")
				return env, nil
			}
			// A cache entry that no longer decodes is ignored and
			// overwritten by the fresh response.
		}
	}

	requestURL := c.baseURL + "/" + operation + "?" + c.buildQuery(params)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt - 1)
			c.logger.Warn().
				Err(lastErr).
				Str("operation", operation).
				Int("attempt", attempt).
				Int("max_attempts", c.maxRetries+1).
				Dur("backoff", delay).
				Msg("tour API call failed, retrying")
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		env, body, err := attemptFetch[T](ctx, c, requestURL)
		if err == nil {
			if c.cache != nil && ttl > 0 {
				c.cache.Set(ctx, key, body, ttl)
			}
			c.logger.Debug().
				Str("operation", operation).
				Int("attempt", attempt+1).
				Msg("tour API call succeeded")
			return env, nil
		}

		lastErr = err
		if !retryable(err) {
			c.logger.Error().
				Err(err).
				Str("operation", operation).
				Msg("tour API call failed terminally")
			return nil, err
		}
	}

	c.logger.Error().
		Err(lastErr).
		Str("operation", operation).
		Int("attempts", c.maxRetries+1).
		Msg("tour API retries exhausted")
	return nil, lastErr
}

// attemptFetch performs a single attempt: one rate-limited HTTP request
// bounded by the per-attempt timeout, envelope validation, and result
// code classification. The raw body is returned alongside the decoded
// envelope so the caller can cache it.
func attemptFetch[T any](ctx context.Context, c *Client, requestURL string) (*Envelope[T], []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &APIError{Class: ClassTransport, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{Class: ClassTransport, Message: "failed to read response body", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{
			Class:   ClassTransport,
			Message: "unexpected status code " + resp.Status,
		}
	}

	// Probe before the typed decode: the upstream sometimes answers 200
	// with a bare error object instead of the envelope.
	var probe struct {
		Response json.RawMessage `json:"response"`
		Message  string          `json:"message"`
		Error    string          `json:"error"`
		Msg      string          `json:"msg"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, nil, &APIError{Class: ClassMalformed, Message: "response body is not JSON", cause: err}
	}
	if len(probe.Response) == 0 {
		msg := firstNonEmpty(probe.Message, probe.Error, probe.Msg, "response envelope missing")
		return nil, nil, &APIError{Class: ClassMalformed, Message: msg}
	}

	env := new(Envelope[T])
	if err := json.Unmarshal(body, env); err != nil {
		return nil, nil, &APIError{Class: ClassMalformed, Message: "failed to decode response envelope", cause: err}
	}

	if code := env.Response.Header.ResultCode; code != resultCodeOK {
		apiErr := classifyResultCode(code, env.Response.Header.ResultMsg)
		if apiErr.Class == ClassGeneric {
			c.logger.Warn().
				Str("result_code", code).
				Str("result_msg", env.Response.Header.ResultMsg).
				Msg("unclassified tour API result code")
		}
		return nil, nil, apiErr
	}

	return env, body, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
