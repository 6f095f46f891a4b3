package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/onet-mcp/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
)

func TestGuardBearerToken(t *testing.T) {
	transport := newTestTransport(t, WithAuthToken("s3cret"))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic s3cret", status: http.StatusUnauthorized},
		{name: "wrong token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer s3cret", status: http.StatusNotFound},
		{name: "scheme is case insensitive", header: "bearer s3cret", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/messages?session_id=unknown", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			transport.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGuardHealthIsOpen(t *testing.T) {
	transport := newTestTransport(t, WithAuthToken("s3cret"), WithAllowedHosts([]string{"mcp.example.com"}))
	req := httptest.NewRequest(http.MethodGet, healthPath, nil)
	req.Host = "elsewhere.example.org"
	rec := httptest.NewRecorder()

	transport.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, rec.Body.String())
}

func TestGuardAllowedHosts(t *testing.T) {
	transport := newTestTransport(t, WithAllowedHosts([]string{" MCP.example.com ", ""}))

	tests := []struct {
		name   string
		host   string
		origin string
		status int
	}{
		{name: "configured host", host: "mcp.example.com:8000", status: http.StatusMethodNotAllowed},
		{name: "loopback", host: "127.0.0.1:8000", status: http.StatusMethodNotAllowed},
		{name: "ipv6 loopback", host: "[::1]:8000", status: http.StatusMethodNotAllowed},
		{name: "unknown host", host: "evil.example.org", status: http.StatusForbidden},
		{name: "unknown origin", host: "mcp.example.com", origin: "https://evil.example.org", status: http.StatusForbidden},
		{name: "allowed origin", host: "mcp.example.com", origin: "http://localhost:3000", status: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, ssePath, nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			transport.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGuardWithoutAllowlistAcceptsAnyHost(t *testing.T) {
	transport := newTestTransport(t)
	req := httptest.NewRequest(http.MethodPost, ssePath, nil)
	req.Host = "anything.example.org"
	rec := httptest.NewRecorder()

	transport.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "example.com", want: "example.com", ok: true},
		{in: "example.com:8000", want: "example.com", ok: true},
		{in: "[::1]:8000", want: "::1", ok: true},
		{in: "[::1]", want: "::1", ok: true},
		{in: "::1", want: "::1", ok: true},
		{in: "[::1", ok: false},
		{in: "  ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeHost(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestTransport(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, metricsPath, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	newTestTransport(t, WithMetrics(metrics.New())).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, metricsPath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "onet_mcp_sessions_active")
}
