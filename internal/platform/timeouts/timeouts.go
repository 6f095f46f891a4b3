// Package timeouts defines shared timeout constants used across the server.
package timeouts

import "time"

// UpstreamRequest caps a single call to the occupational catalog, including
// reading the response body.
const UpstreamRequest = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StreamKeepAlive is the interval between comment frames on idle event streams.
const StreamKeepAlive = 30 * time.Second
