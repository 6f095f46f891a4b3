package service

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
)

// guard wraps next with the host allowlist and bearer token checks.
func (t *HTTPTransport) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := t.validateRequestHost(r); err != nil {
			t.reject(w, r, err)
			return
		}
		if err := t.authorize(r); err != nil {
			t.reject(w, r, err)
			return
		}
		next(w, r)
	}
}

func (t *HTTPTransport) reject(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	t.logger.Warn().Err(err).Str("path", r.URL.Path).Str("remote_addr", r.RemoteAddr).Msg("request rejected")
	writeJSON(w, code.HTTPStatus(), map[string]string{
		"error": err.Error(),
		"code":  string(code),
	})
}

// authorize checks the bearer token when one is configured.
func (t *HTTPTransport) authorize(r *http.Request) error {
	if t.authToken == "" {
		return nil
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return apperrors.New(apperrors.CodeUnauthorized, "missing bearer token")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(t.authToken)) != 1 {
		return apperrors.New(apperrors.CodeUnauthorized, "invalid bearer token")
	}
	return nil
}

// validateRequestHost checks Host and Origin against the allowlist to block
// DNS rebinding. Without an allowlist every host is accepted.
func (t *HTTPTransport) validateRequestHost(r *http.Request) error {
	if len(t.allowedHosts) == 0 {
		return nil
	}
	if !t.isAllowedHostHeader(r.Host) {
		return apperrors.WithMetadata(apperrors.CodeForbiddenHost, "invalid host", map[string]string{"host": r.Host})
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" || !t.isAllowedHostHeader(parsed.Host) {
		return apperrors.WithMetadata(apperrors.CodeForbiddenHost, "invalid origin", map[string]string{"origin": origin})
	}
	return nil
}

// isAllowedHostHeader reports whether a Host or Origin value names a loopback
// address or a configured host.
func (t *HTTPTransport) isAllowedHostHeader(host string) bool {
	resolved, ok := normalizeHost(host)
	if !ok {
		return false
	}
	if isLoopbackHost(resolved) {
		return true
	}
	_, ok = t.allowedHosts[strings.ToLower(resolved)]
	return ok
}

func isLoopbackHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

// parseAllowedHosts lowercases and deduplicates configured host names.
func parseAllowedHosts(hosts []string) map[string]struct{} {
	result := make(map[string]struct{}, len(hosts))
	for _, entry := range hosts {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		result[strings.ToLower(trimmed)] = struct{}{}
	}
	return result
}

// normalizeHost strips the port and IPv6 brackets from a Host header value.
func normalizeHost(host string) (string, bool) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", false
	}
	if strings.HasPrefix(host, "[") {
		if h, _, err := net.SplitHostPort(host); err == nil {
			return h, true
		}
		if strings.HasSuffix(host, "]") {
			return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"), true
		}
		return "", false
	}
	switch strings.Count(host, ":") {
	case 0:
		return host, true
	case 1:
		h, _, err := net.SplitHostPort(host)
		if err != nil {
			return "", false
		}
		return h, true
	default:
		return host, true
	}
}
