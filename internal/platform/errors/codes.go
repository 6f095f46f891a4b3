// Package errors provides structured error handling for the MCP server.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Startup errors
	CodeConfiguration Code = "CONFIGURATION_ERROR"

	// Upstream catalog errors
	CodeUpstreamHTTP Code = "UPSTREAM_HTTP_ERROR"
	CodeTransport    Code = "TRANSPORT_ERROR"

	// Session errors
	CodeSessionNotFound   Code = "SESSION_NOT_FOUND"
	CodeSessionGone       Code = "SESSION_GONE"
	CodeSessionExists     Code = "SESSION_EXISTS"
	CodeMalformedMessage  Code = "MALFORMED_MESSAGE"
	CodeDispatchCancelled Code = "DISPATCH_CANCELLED"

	// Request guard errors
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbiddenHost Code = "FORBIDDEN_HOST"
)

// HTTPStatus maps error codes to the status returned by the HTTP endpoints.
// Codes without a dedicated status, malformed messages included, map to 500.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeSessionNotFound:
		return http.StatusNotFound
	case CodeSessionGone:
		return http.StatusGone
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbiddenHost:
		return http.StatusForbidden
	case CodeUpstreamHTTP, CodeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
