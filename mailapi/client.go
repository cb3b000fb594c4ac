package mailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

// Version is sent in the X-Client-Api-Version header.
const Version = "0.1.0"

const (
	clientName = "email-sdk-go"

	headerClientAPI        = "X-Client-Api"
	headerClientAPIVersion = "X-Client-Api-Version"
	headerClientAPIKey     = "X-Client-Api-Key"

	// replies are a small JSON envelope
	maxResponseBytes = 1 << 20
)

var _ email.Sender = &Client{}

// Client talks to the email API. It holds no mutable state after
// construction and is safe for concurrent use.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	logger     zerolog.Logger
	env        LookupFunc
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, for example to supply a
// custom transport. Config.Timeout is ignored when this is used. The client
// should not follow redirects (CheckRedirect returning
// http.ErrUseLastResponse), otherwise the API key header is sent on to the
// redirect target.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger enables debug logging of each request. The API key is never
// logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithEnvironment lets NewClient fall back to SERVICE_API_KEY and
// SERVICE_API_ROOT read through env.
func WithEnvironment(env LookupFunc) Option {
	return func(c *Client) {
		c.env = env
	}
}

// NewClient resolves the credentials and returns a ready client. It fails
// with REASON_MISSING_API_KEY or REASON_INCORRECT_API_KEY_FORMAT.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	creds, err := Resolve(cfg, c.env)
	if err != nil {
		return nil, err
	}
	c.creds = creds

	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{
			Timeout:       timeout,
			CheckRedirect: noRedirects,
		}
	}

	return c, nil
}

// noRedirects hands a 3xx back to the decoder, which reports it as an
// endpoint error.
func noRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// APIRoot is the resolved base URL requests are sent to.
func (c *Client) APIRoot() string {
	return c.creds.APIRoot
}

// Do serialises payload, POSTs it to endpoint under the API root and decodes
// the reply. It performs exactly one request.
func (c *Client) Do(ctx context.Context, endpoint string, payload any) (*email.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, email.NewInvalidJSONError("unable to serialise request into valid JSON", err)
	}

	url := c.creds.APIRoot + "/" + strings.TrimLeft(endpoint, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, email.NewRequestError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerClientAPI, clientName)
	req.Header.Set(headerClientAPIVersion, Version)
	req.Header.Set(headerClientAPIKey, c.creds.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("url", url).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("email API request failed")
		return nil, email.NewRequestError(fmt.Sprintf("request to %s failed", url), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, email.NewRequestError("failed to read response body", err)
	}

	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("email API request")

	return decodeResponse(resp.StatusCode, raw)
}
