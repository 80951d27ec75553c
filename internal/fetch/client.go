package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrHostNotFound is returned when the host of a URL cannot be resolved.
//
// Callers treat it like a missing resource rather than a broken network.
var ErrHostNotFound = errors.New("host not found")

// Response is the outcome of a fetch that reached the server.
//
// The caller owns Body and must close it.
type Response struct {
	StatusCode    int
	Status        string
	ContentLength int64
	Body          io.ReadCloser
}

// OK reports whether the server answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs single GET retrievals.
//
// Client provides:
//   - Configured User-Agent header
//   - Response header timeout (bodies may stream for as long as they need)
//   - Classification of DNS failures as ErrHostNotFound
//
// Example usage:
//
//	client := NewClient(WithUserAgent("album-dl"))
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://example.com/album/name")
//
//	// Stream a file
//	resp, err := client.Fetch(ctx, mp3URL)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new Client.
//
// Without options the client waits up to headerTimeout for response
// headers and sends an "AlbumDownloader" User-Agent.
func NewClient(headerTimeout time.Duration, opts ...Option) *Client {
	if headerTimeout <= 0 {
		headerTimeout = 60 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout

	c := &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  "AlbumDownloader",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues a GET request for url.
//
// A non-2xx answer is not an error: the Response is returned and the
// caller decides. Transport failures are returned as errors; an
// unresolvable host matches ErrHostNotFound via errors.Is.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}

	return &Response{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// Unlike Fetch, a non-2xx status is an error here.
//
// Example:
//
//	html, err := client.GetString(ctx, "https://example.com/album/name")
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !resp.OK() {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func classify(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return fmt.Errorf("%w: %w", ErrHostNotFound, err)
	}
	return err
}
