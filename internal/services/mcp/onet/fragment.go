package onet

import (
	"github.com/tidwall/gjson"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
)

// FailureKind classifies why a fragment could not be fetched.
type FailureKind string

const (
	// FailureHTTP marks a non-2xx response from the catalog.
	FailureHTTP FailureKind = "HTTP_ERROR"
	// FailureConnection marks transport errors, timeouts and undecodable bodies.
	FailureConnection FailureKind = "CONNECTION_ERROR"
)

// Failure describes a fragment that could not be fetched.
type Failure struct {
	Kind    FailureKind
	Status  int    // HTTP status, zero for connection failures
	Message string // short label: "HTTP 404" or "Connection Error"
	Detail  string // response body or transport error text
	URL     string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// Code maps the failure onto the server error taxonomy.
func (f *Failure) Code() apperrors.Code {
	if f.Kind == FailureHTTP {
		return apperrors.CodeUpstreamHTTP
	}
	return apperrors.CodeTransport
}

// Reason returns the most descriptive text available for the failure.
func (f *Failure) Reason() string {
	if f.Detail != "" {
		return f.Detail
	}
	return f.Message
}

// Fragment is the outcome of one catalog fetch: either a decoded JSON body or
// a Failure, never both.
type Fragment struct {
	Body    gjson.Result
	Failure *Failure
}

// Succeeded wraps a decoded body.
func Succeeded(body gjson.Result) Fragment {
	return Fragment{Body: body}
}

// Failed wraps a failure.
func Failed(f *Failure) Fragment {
	return Fragment{Failure: f}
}

// OK reports whether the fragment holds a body.
func (f Fragment) OK() bool {
	return f.Failure == nil && f.Body.Exists()
}

// Record returns the body when it is a usable catalog record: a non-empty
// JSON object without an "error" member.
func (f Fragment) Record() (gjson.Result, bool) {
	if !f.OK() || !f.Body.IsObject() {
		return gjson.Result{}, false
	}
	empty := true
	f.Body.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	if empty || f.Body.Get("error").Exists() {
		return gjson.Result{}, false
	}
	return f.Body, true
}
