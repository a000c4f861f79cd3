package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"clientdesk/internal/domain"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://boasorte.teddybackoffice.com.br"

// maxBody bounds how much of a response body is read.
const maxBody = 4 << 20

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

// WithTimeout sets the per-request timeout of the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTP = &http.Client{Timeout: d, Transport: c.HTTP.Transport}
		}
	}
}

// WithRateLimit caps outgoing requests. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the request logger.
func WithLogger(log logrus.FieldLogger) Option { return func(c *Client) { c.log = log } }

// Client talks JSON over HTTP to the clients backend.
type Client struct {
	Base string
	HTTP *http.Client

	limiter *rate.Limiter
	log     logrus.FieldLogger
}

// NewHTTP returns a Client for base, e.g. DefaultBaseURL.
func NewHTTP(base string, opts ...Option) *Client {
	c := &Client{
		Base:    base,
		HTTP:    http.DefaultClient,
		limiter: rate.NewLimiter(rate.Inf, 0),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "api")
	return c
}

// ListClients fetches one page of clients.
func (c *Client) ListClients(ctx context.Context, page, limit int) (domain.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var w wirePage
	if err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &w); err != nil {
		return domain.Page{}, err
	}
	return w.toDomain()
}

// CreateClient creates a client and returns it as stored by the backend.
func (c *Client) CreateClient(ctx context.Context, in domain.ClientInput) (domain.Client, error) {
	var w wireClient
	if err := c.do(ctx, http.MethodPost, "/users", in, &w); err != nil {
		return domain.Client{}, err
	}
	return w.toDomain()
}

// UpdateClient replaces the fields of client id.
func (c *Client) UpdateClient(ctx context.Context, id domain.ClientID, in domain.ClientInput) (domain.Client, error) {
	var w wireClient
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id.String()), in, &w); err != nil {
		return domain.Client{}, err
	}
	return w.toDomain()
}

// DeleteClient removes client id. Any 2xx status is success.
func (c *Client) DeleteClient(ctx context.Context, id domain.ClientID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("api %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"url":      u,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("request")

	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: method, URL: u, Code: resp.StatusCode, Status: resp.Status}
	}
	if out == nil {
		return nil
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("api %s %s: %w", method, u, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Compile-time assertion that Client implements domain.ClientAPI.
var _ domain.ClientAPI = (*Client)(nil)
