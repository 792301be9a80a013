package gobi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PageFetcher defines the interface for fetching report markup.
// This interface is implemented by *Client and can be used for testing.
type PageFetcher interface {
	FetchPage(ctx context.Context, ref string) (string, error)
	FetchFragment(ctx context.Context, ref, target string) (string, error)
}

// Ensure Client implements PageFetcher at compile time.
var _ PageFetcher = (*Client)(nil)

// Client fetches report pages from a GoBI server.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServer    = "127.0.0.1:8080"
	defaultUserAgent = "gobiview/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 16 << 20
)

// NewClient builds a Client for the server at host:port or a full base URL.
func NewClient(server string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Resolve returns ref as an absolute URL on the server.
func (c *Client) Resolve(ref string) (string, error) {
	rel, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(rel).String(), nil
}

// FetchPage retrieves a complete report page.
func (c *Client) FetchPage(ctx context.Context, ref string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	return c.get(ctx, ref, "")
}

// FetchFragment retrieves the partial that replaces the element target.
func (c *Client) FetchFragment(ctx context.Context, ref, target string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(target) == "" {
		return "", fmt.Errorf("target id required")
	}
	return c.get(ctx, ref, target)
}

func (c *Client) get(ctx context.Context, ref, target string) (string, error) {
	reqURL, err := c.Resolve(ref)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", c.userAgent)
	if target != "" {
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Target", target)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("server %s returned status %d", req.URL.RequestURI(), resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
