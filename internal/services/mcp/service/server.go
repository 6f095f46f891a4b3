package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/onet-mcp/internal/platform/metrics"
	"github.com/louisbranch/onet-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	serverName    = "onet-server"
	serverVersion = "1.0.0"
)

// TransportKind selects how MCP clients reach the server.
type TransportKind string

const (
	// TransportSSE serves the legacy HTTP+SSE transport.
	TransportSSE TransportKind = "sse"
	// TransportStdio serves a single session over stdin and stdout.
	TransportStdio TransportKind = "stdio"
)

// Config configures the MCP server runtime.
type Config struct {
	Transport    TransportKind
	HTTPAddr     string
	AllowedHosts []string
	AuthToken    string
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

// Server exposes the occupation tools through an MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a server with every occupation tool registered.
func New(catalog domain.Catalog) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("occupation catalog is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcpServer.AddReceivingMiddleware(recoverMethodPanic)
	if err := registerModules(mcpServerRegistrationAdapter{server: mcpServer}, newMCPRegistrationModules(catalog)); err != nil {
		return nil, err
	}
	return &Server{mcpServer: mcpServer}, nil
}

// recoverMethodPanic keeps a panicking method handler from taking down the
// process. The request fails with an internal error and the session stays open.
func recoverMethodPanic(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (result mcp.Result, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("method", method).Interface("panic", r).Msg("method handler panicked")
				result, err = nil, &jsonrpc.Error{Code: jsonrpc.CodeInternalError, Message: fmt.Sprintf("%s: internal error: %v", method, r)}
			}
		}()
		return next(ctx, method, req)
	}
}

// Run serves catalog over the configured transport until ctx ends.
func Run(ctx context.Context, catalog domain.Catalog, cfg Config) error {
	server, err := New(catalog)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportSSE, "":
		addr := cfg.HTTPAddr
		if addr == "" {
			addr = "0.0.0.0:8000"
		}
		transport := NewHTTPTransport(addr, server.mcpServer,
			WithAllowedHosts(cfg.AllowedHosts),
			WithAuthToken(cfg.AuthToken),
			WithMetrics(cfg.Metrics),
			WithLogger(cfg.Logger),
		)
		return transport.Start(ctx)
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport runs one session on transport until it ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
