package onet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
	"github.com/louisbranch/onet-mcp/internal/platform/metrics"
	"github.com/louisbranch/onet-mcp/internal/platform/timeouts"
)

const (
	// DefaultBaseURL is the public O*NET Web Services endpoint.
	DefaultBaseURL = "https://api-v2.onetcenter.org"

	userAgent = "MCP-Agent/1.0"

	// searchResultLimit bounds keyword searches.
	searchResultLimit = 5

	// maxBodyBytes guards against runaway responses.
	maxBodyBytes = 8 << 20

	tracerName = "github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

// Client issues catalog requests. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another catalog host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a catalog client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperrors.New(apperrors.CodeConfiguration, "catalog API key is required")
	}
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: timeouts.UpstreamRequest,
		logger:  zerolog.Nop(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		return nil, apperrors.New(apperrors.CodeConfiguration, "catalog base URL is required")
	}
	return c, nil
}

// Fetch issues one GET against the catalog. It never returns an error: every
// failure is reported through the fragment.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) Fragment {
	return c.fetch(ctx, "", path, query)
}

// Search looks occupations up by keyword.
func (c *Client) Search(ctx context.Context, keyword string) Fragment {
	query := url.Values{
		"keyword": []string{keyword},
		"end":     []string{fmt.Sprint(searchResultLimit)},
	}
	return c.fetch(ctx, sectionSearch, "/online/search", query)
}

// FetchProfile fetches every profile section for code concurrently and waits
// for all of them. One failing section never cancels the others.
func (c *Client) FetchProfile(ctx context.Context, code string) Profile {
	base := "/online/occupations/" + url.PathEscape(code)
	results := make([]Fragment, len(profileRequests))

	var g errgroup.Group
	g.SetLimit(len(profileRequests))
	for i, req := range profileRequests {
		g.Go(func() error {
			results[i] = c.fetch(ctx, req.section, base+req.suffix, req.query())
			return nil
		})
	}
	_ = g.Wait()

	profile := make(Profile, len(profileRequests))
	for i, req := range profileRequests {
		profile[req.section] = results[i]
	}
	return profile
}

func (c *Client) fetch(ctx context.Context, section Section, path string, query url.Values) Fragment {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	label := string(section)
	if label == "" {
		label = "other"
	}

	// Issued calls run to completion or timeout even when the caller goes away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, "onet.fetch", trace.WithAttributes(
		attribute.String("onet.section", label),
		attribute.String("http.url", target),
	))
	defer span.End()

	start := time.Now()
	frag := c.do(ctx, target)
	elapsed := time.Since(start)

	outcome := "ok"
	if frag.Failure != nil {
		outcome = strings.ToLower(string(frag.Failure.Kind))
		span.SetStatus(codes.Error, frag.Failure.Message)
		span.SetAttributes(attribute.Int("http.status_code", frag.Failure.Status))
		c.logger.Warn().
			Str("section", label).
			Str("url", target).
			Int("status", frag.Failure.Status).
			Str("kind", string(frag.Failure.Kind)).
			Msg("catalog fetch failed")
	}
	c.metrics.UpstreamFetched(label, outcome, elapsed.Seconds())
	return frag
}

func (c *Client) do(ctx context.Context, target string) Fragment {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return connectionFailure(target, err.Error())
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionFailure(target, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return connectionFailure(target, fmt.Sprintf("read response: %v", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failed(&Failure{
			Kind:    FailureHTTP,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
			Detail:  string(body),
			URL:     target,
		})
	}
	if !gjson.ValidBytes(body) {
		return connectionFailure(target, "response is not valid JSON")
	}
	return Succeeded(gjson.ParseBytes(body))
}

func connectionFailure(target, detail string) Fragment {
	return Failed(&Failure{
		Kind:    FailureConnection,
		Message: "Connection Error",
		Detail:  detail,
		URL:     target,
	})
}
