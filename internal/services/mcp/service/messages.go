package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

// maxMessageBytes caps the body of one posted message.
const maxMessageBytes = 4 << 20

// Dispatch routes one posted message body to the session registered under id.
//
// It never changes the registry. The returned error carries one of the
// session error codes; nil means the message was accepted.
func (t *HTTPTransport) Dispatch(ctx context.Context, id string, body []byte) error {
	conn, ok := t.registry.Lookup(id)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeSessionNotFound, "session not found", map[string]string{
			"session_id": id,
		})
	}
	if conn.Closed() {
		return sessionGone(id)
	}

	msg, err := jsonrpc.DecodeMessage(body)
	if err != nil {
		conn.notify(fmt.Errorf("malformed message: %w", err))
		return apperrors.Wrap(apperrors.CodeMalformedMessage, "decode message", err)
	}
	return conn.Deliver(ctx, msg)
}

// handleMessages handles POST /messages?session_id=<id>.
func (t *HTTPTransport) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("session_id"))
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageBytes))
	if err != nil {
		err = apperrors.Wrap(apperrors.CodeMalformedMessage, "read message body", err)
	} else {
		err = t.Dispatch(r.Context(), id, body)
	}

	if err == nil {
		t.metrics.Dispatched("accepted")
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
		return
	}

	code := apperrors.GetCode(err)
	t.metrics.Dispatched(strings.ToLower(string(code)))
	t.logger.Warn().Err(err).Str("session_id", id).Str("code", string(code)).Msg("dispatch message")
	writeJSON(w, code.HTTPStatus(), map[string]string{
		"error": err.Error(),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
