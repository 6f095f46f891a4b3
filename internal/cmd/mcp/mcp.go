// Package mcp parses MCP command flags and selects the SSE or stdio transport.
package mcp

import (
	"context"
	"flag"
	"strings"

	mcpapp "github.com/louisbranch/onet-mcp/internal/app/mcp"
	entrypoint "github.com/louisbranch/onet-mcp/internal/platform/cmd"
	"github.com/louisbranch/onet-mcp/internal/platform/logging"
)

// Config holds MCP command configuration.
type Config struct {
	APIKey       string   `env:"ONET_API_KEY,required,notEmpty"`
	BaseURL      string   `env:"ONET_API_BASE_URL"      envDefault:"https://api-v2.onetcenter.org"`
	HTTPAddr     string   `env:"ONET_MCP_HTTP_ADDR"     envDefault:"0.0.0.0:8000"`
	Transport    string   `env:"ONET_MCP_TRANSPORT"     envDefault:"sse"`
	AllowedHosts []string `env:"ONET_MCP_ALLOWED_HOSTS" envSeparator:","`
	AuthToken    string   `env:"ONET_MCP_AUTH_TOKEN"`
	LogLevel     string   `env:"ONET_MCP_LOG_LEVEL"     envDefault:"info"`
	LogPretty    bool     `env:"ONET_MCP_LOG_PRETTY"    envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config. A nil environ
// reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, environ); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BaseURL, "api-base-url", cfg.BaseURL, "O*NET web services base URL")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (for the sse transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: sse or stdio")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", cfg.LogPretty, "Human readable console logs")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// Run configures logging and telemetry, then serves MCP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.Info().
		Str("transport", cfg.Transport).
		Str("http_addr", cfg.HTTPAddr).
		Str("api_base_url", cfg.BaseURL).
		Msg("starting O*NET MCP server")

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpapp.Run(ctx, mcpapp.Options{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			HTTPAddr:     cfg.HTTPAddr,
			Transport:    cfg.Transport,
			AllowedHosts: cfg.AllowedHosts,
			AuthToken:    cfg.AuthToken,
		})
	})
}
