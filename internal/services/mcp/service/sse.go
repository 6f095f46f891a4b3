package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"golang.org/x/sync/errgroup"
)

// Close causes recorded when a session ends.
const (
	closeCauseClientDisconnect = "client_disconnect"
	closeCauseEngineStopped    = "engine_stopped"
	closeCauseShutdown         = "shutdown"
	closeCauseWriteError       = "write_error"
	closeCausePanic            = "panic"
)

var (
	errSessionEnded = errors.New("session ended")
	errSessionPanic = errors.New("session task panicked")
)

// messageEndpoint is the relative URL clients post to for session id.
func messageEndpoint(id string) string {
	return messagesPath + "?session_id=" + url.QueryEscape(id)
}

// handleSSE opens one session and streams its output until the client goes
// away, the protocol engine stops or the server shuts down.
func (t *HTTPTransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id, err := t.newSessionID()
	if err != nil {
		t.logger.Error().Err(err).Msg("open session")
		http.Error(w, "failed to open session", http.StatusInternalServerError)
		return
	}
	conn := newSessionConn(id)
	if err := t.registry.Register(id, conn); err != nil {
		t.logger.Error().Err(err).Str("session_id", id).Msg("register session")
		http.Error(w, "failed to open session", http.StatusInternalServerError)
		return
	}

	logger := t.logger.With().Str("session_id", id).Logger()
	t.metrics.SessionOpened()
	logger.Info().Str("remote_addr", r.RemoteAddr).Msg("session opened")

	cause := closeCauseClientDisconnect
	defer func() {
		t.registry.Remove(id)
		_ = conn.Close()
		t.metrics.SessionClosed(cause)
		logger.Info().Str("cause", cause).Msg("session closed")
	}()

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "endpoint", []byte(messageEndpoint(id))); err != nil {
		cause = closeCauseWriteError
		logger.Warn().Err(err).Msg("announce session endpoint")
		return
	}
	flusher.Flush()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(t.serverCtx, cancel)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverTask(&err)
		return t.runEngine(gctx, conn)
	})
	g.Go(func() (err error) {
		defer recoverTask(&err)
		return relay(gctx, w, flusher, conn, t.keepAlive)
	})
	err = g.Wait()

	cause = t.closeCause(r.Context(), err)
	if cause == closeCausePanic || cause == closeCauseWriteError {
		logger.Error().Err(err).Msg("session failed")
	}
}

// runEngine binds a protocol engine to conn and blocks until it stops.
func (t *HTTPTransport) runEngine(ctx context.Context, conn *sessionConn) error {
	session, err := t.server.Connect(ctx, &sessionTransport{conn: conn}, nil)
	if err != nil {
		return fmt.Errorf("connect protocol engine: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = session.Close()
	})
	defer stop()

	if err := session.Wait(); err != nil && ctx.Err() == nil {
		t.logger.Debug().Err(err).Str("session_id", conn.id).Msg("protocol engine stopped")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errSessionEnded
}

// relay drains the outbound queue onto the event stream.
func relay(ctx context.Context, w io.Writer, flusher http.Flusher, conn *sessionConn, keepAlive time.Duration) error {
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-conn.done:
			return errSessionEnded
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return fmt.Errorf("write keepalive: %w", err)
			}
		case frame := <-conn.outbound:
			if err := writeFrame(w, frame); err != nil {
				return err
			}
		}
		flusher.Flush()
	}
}

func writeFrame(w io.Writer, frame outboundFrame) error {
	if frame.err != nil {
		data, err := json.Marshal(map[string]string{"error": frame.err.Error()})
		if err != nil {
			return fmt.Errorf("encode error event: %w", err)
		}
		return writeEvent(w, "error", data)
	}
	data, err := jsonrpc.EncodeMessage(frame.msg)
	if err != nil {
		return fmt.Errorf("encode message event: %w", err)
	}
	return writeEvent(w, "message", data)
}

func writeEvent(w io.Writer, name string, data []byte) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return fmt.Errorf("write %s event: %w", name, err)
	}
	return nil
}

func recoverTask(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", errSessionPanic, r)
	}
}

func (t *HTTPTransport) closeCause(reqCtx context.Context, err error) string {
	switch {
	case errors.Is(err, errSessionPanic):
		return closeCausePanic
	case t.serverCtx.Err() != nil:
		return closeCauseShutdown
	case reqCtx.Err() != nil:
		return closeCauseClientDisconnect
	case errors.Is(err, errSessionEnded):
		return closeCauseEngineStopped
	default:
		return closeCauseWriteError
	}
}
