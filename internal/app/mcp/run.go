// Package mcp assembles the occupation catalog client and the MCP server.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/onet-mcp/internal/platform/logging"
	"github.com/louisbranch/onet-mcp/internal/platform/metrics"
	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
	"github.com/louisbranch/onet-mcp/internal/services/mcp/service"
)

// Options holds everything needed to run one server process.
type Options struct {
	APIKey       string
	BaseURL      string
	HTTPAddr     string
	Transport    string
	AllowedHosts []string
	AuthToken    string
}

// Run builds the catalog client and serves it until ctx ends.
func Run(ctx context.Context, opts Options) error {
	transportKind, err := parseTransport(opts.Transport)
	if err != nil {
		return err
	}

	m := metrics.New()
	clientOpts := []onet.Option{
		onet.WithMetrics(m),
		onet.WithLogger(logging.Component("onet")),
	}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		clientOpts = append(clientOpts, onet.WithBaseURL(baseURL))
	}
	client, err := onet.NewClient(opts.APIKey, clientOpts...)
	if err != nil {
		return err
	}

	return service.Run(ctx, client, service.Config{
		Transport:    transportKind,
		HTTPAddr:     opts.HTTPAddr,
		AllowedHosts: opts.AllowedHosts,
		AuthToken:    opts.AuthToken,
		Metrics:      m,
		Logger:       logging.Component("transport"),
	})
}

func parseTransport(transport string) (service.TransportKind, error) {
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case "sse", "http", "":
		return service.TransportSSE, nil
	case "stdio":
		return service.TransportStdio, nil
	default:
		return "", fmt.Errorf("invalid transport %q: must be 'sse' or 'stdio'", transport)
	}
}
