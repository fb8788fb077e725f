// Package client is the browser-side half of the service: it submits uploads,
// fetches the gallery and derives everything a video card shows.
package client

import (
	"net/http"
	"strings"
	"time"

	"reelvault/internal/media"
)

// MaxVideoSize is the client-side ceiling checked before any network call.
const MaxVideoSize = 70 * 1024 * 1024

type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	delivery *media.Delivery
	now      func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends the identity token as a bearer header on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithDelivery enables card URLs and image downloads.
func WithDelivery(d *media.Delivery) Option {
	return func(c *Client) { c.delivery = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Minute},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// doAPI sends an API request without following redirects. Anonymous API calls
// are answered with a redirect to the sign-in page.
func (c *Client) doAPI(req *http.Request) (*http.Response, error) {
	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return hc.Do(req)
}

// signInRequired reports a redirect or 401 answer to an API call.
func signInRequired(status int) bool {
	return status == http.StatusUnauthorized ||
		(status >= http.StatusMultipleChoices && status < http.StatusBadRequest)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
