// Package service wires protocol transport to domain services.
//
// It is the transport adapter layer: the package knows how to run MCP over
// stdio or over the legacy HTTP+SSE transport, and delegates business meaning
// to the occupation tool handlers in the domain package.
//
// On the HTTP transport every GET /sse opens one session. The session id is
// announced as the first event of the stream and must be echoed by the client
// on POST /messages?session_id=<id>. Each session owns its own protocol engine
// and lives exactly as long as its stream.
package service
