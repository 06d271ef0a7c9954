package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/pathpick/packages/logger"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
	// DefaultMaxBodyBytes caps how much of a response body is read
	DefaultMaxBodyBytes = 10 << 20
)

// ResolveFunc expands placeholders in a request field before sending.
type ResolveFunc func(string) string

type Client struct {
	httpClient     *http.Client
	timeout        time.Duration
	followRedirect bool
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	maxBodyBytes   int64
	defaultHeaders map[string]string
	resolve        ResolveFunc
	log            logger.Logger
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:        DefaultTimeout,
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
		maxBodyBytes:   DefaultMaxBodyBytes,
		defaultHeaders: make(map[string]string),
		resolve:        func(s string) string { return s },
		log:            logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !c.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			c.log.Warn("ignoring invalid proxy URL", "proxy", c.proxyURL, "error", err)
		}
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !c.followRedirect {
			return http.ErrUseLastResponse
		}
		if len(via) >= c.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	c.httpClient = &http.Client{
		Transport:     transport,
		Timeout:       c.timeout,
		CheckRedirect: redirectPolicy,
	}

	return c
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

// WithDefaultHeaders sets headers sent with every request. Headers from the
// request.Config take precedence.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithMaxBodyBytes caps the number of response body bytes captured.
func WithMaxBodyBytes(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithResolver expands placeholders in the URL, header values and body.
func WithResolver(fn ResolveFunc) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.resolve = fn
		}
	}
}

func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// Execute issues exactly one HTTP call described by cfg. Transport failures
// are returned as *NetworkError; any received response, whatever its status,
// is returned as a Capture.
func (c *Client) Execute(ctx context.Context, cfg *request.Config) (*Capture, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil request config")
	}

	rawURL := strings.TrimSpace(c.resolve(cfg.URL))
	method := string(cfg.Method)

	var body io.Reader
	if cfg.SendsBody() {
		body = strings.NewReader(c.resolve(cfg.Body))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &NetworkError{Op: method, URL: rawURL, Err: err}
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}
	for k, values := range cfg.OutgoingHeaders() {
		httpReq.Header.Set(k, c.resolve(values[len(values)-1]))
	}

	c.log.Debug("sending request", "method", method, "url", rawURL, "headers", len(httpReq.Header))

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		c.log.Warn("request failed", "method", method, "url", rawURL, "error", err)
		return nil, &NetworkError{Op: method, URL: rawURL, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, &NetworkError{Op: method, URL: rawURL, Err: fmt.Errorf("reading response body: %w", err)}
	}
	truncated := int64(len(respBody)) > c.maxBodyBytes
	if truncated {
		respBody = respBody[:c.maxBodyBytes]
		c.log.Warn("response body exceeds size limit, truncated",
			"url", rawURL,
			"limit_bytes", c.maxBodyBytes,
		)
	}

	headers := make(map[string]string, len(httpResp.Header))
	for k, v := range httpResp.Header {
		headers[k] = strings.Join(v, ", ")
	}

	raw := string(respBody)
	parsed := ParseBody(raw)

	c.log.Debug("response received",
		"method", method,
		"url", rawURL,
		"status", httpResp.StatusCode,
		"bytes", len(respBody),
		"json", parsed.IsJSONValid,
		"duration_ms", duration.Milliseconds(),
	)

	return &Capture{
		Status:      httpResp.StatusCode,
		StatusText:  statusText(httpResp),
		Headers:     headers,
		RawText:     raw,
		ParsedJSON:  parsed.Value,
		IsJSONValid: parsed.IsJSONValid,
		Duration:    duration,
		Truncated:   truncated,
	}, nil
}

// statusText returns the reason phrase sent by the server, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	code := fmt.Sprintf("%d", resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
