package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	mcpcmd "github.com/louisbranch/onet-mcp/internal/cmd/mcp"
	"github.com/louisbranch/onet-mcp/internal/platform/config"
)

// main starts the O*NET MCP server on SSE or stdio.
func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		config.Exitf("parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to serve MCP")
	}
}
