package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/louisbranch/onet-mcp/internal/platform/id"
	"github.com/louisbranch/onet-mcp/internal/platform/metrics"
	"github.com/louisbranch/onet-mcp/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const (
	ssePath      = "/sse"
	messagesPath = "/messages"
	healthPath   = "/health"
	metricsPath  = "/metrics"
)

var listenTCP = net.Listen

// HTTPTransport serves MCP over the legacy HTTP+SSE transport.
//
// It owns the session registry: GET /sse registers a session for the lifetime
// of its stream and POST /messages routes bodies to registered sessions.
type HTTPTransport struct {
	addr         string
	server       *mcp.Server
	registry     *sessionRegistry
	allowedHosts map[string]struct{}
	authToken    string
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	keepAlive    time.Duration
	newSessionID func() (string, error)

	serverCtx    context.Context
	serverCancel context.CancelFunc
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// WithAllowedHosts restricts Host and Origin headers to loopback plus hosts.
func WithAllowedHosts(hosts []string) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.allowedHosts = parseAllowedHosts(hosts)
	}
}

// WithAuthToken requires "Authorization: Bearer <token>" on session endpoints.
func WithAuthToken(token string) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.authToken = token
	}
}

// WithMetrics records session and dispatch metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.metrics = m
	}
}

// WithLogger sets the transport logger.
func WithLogger(logger zerolog.Logger) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.logger = logger
	}
}

// WithKeepAlive sets the interval between comment frames on idle streams.
func WithKeepAlive(interval time.Duration) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if interval > 0 {
			t.keepAlive = interval
		}
	}
}

// NewHTTPTransport creates a transport that serves server on addr.
func NewHTTPTransport(addr string, server *mcp.Server, opts ...HTTPTransportOption) *HTTPTransport {
	ctx, cancel := context.WithCancel(context.Background())
	t := &HTTPTransport{
		addr:         addr,
		server:       server,
		registry:     newSessionRegistry(),
		allowedHosts: map[string]struct{}{},
		logger:       zerolog.Nop(),
		keepAlive:    timeouts.StreamKeepAlive,
		newSessionID: id.NewID,
		serverCtx:    ctx,
		serverCancel: cancel,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Handler returns the HTTP routes of the transport.
func (t *HTTPTransport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ssePath, t.guard(t.handleSSE))
	mux.HandleFunc(messagesPath, t.guard(t.handleMessages))
	mux.HandleFunc(healthPath, t.handleHealth)
	if t.metrics != nil {
		mux.Handle(metricsPath, t.metrics.Handler())
	}
	return mux
}

// SessionCount reports the number of open sessions.
func (t *HTTPTransport) SessionCount() int {
	return t.registry.Len()
}

// Start listens on the configured address and serves until ctx is done.
// Open streams are ended before the listener drains.
func (t *HTTPTransport) Start(ctx context.Context) error {
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	return t.serve(ctx, listener)
}

func (t *HTTPTransport) serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	t.logger.Info().Str("addr", listener.Addr().String()).Msg("MCP SSE transport listening")

	select {
	case <-ctx.Done():
		t.serverCancel()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		t.logger.Info().Msg("MCP SSE transport stopped")
		return nil
	case err := <-errCh:
		t.serverCancel()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

// Close ends every open stream.
func (t *HTTPTransport) Close() {
	t.serverCancel()
}

// handleHealth handles GET /health.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": t.registry.Len(),
	})
}
