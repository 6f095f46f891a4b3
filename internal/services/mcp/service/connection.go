package service

import (
	"context"
	"io"
	"sync"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// channelBufferSize bounds the inbound and outbound queues of one session.
// Senders block once a queue is full.
const channelBufferSize = 10

// outboundFrame is one item for the event stream: either a protocol message
// or an error to report to the client.
type outboundFrame struct {
	msg jsonrpc.Message
	err error
}

// sessionConn is the per-session mcp.Connection.
//
// The message endpoint feeds inbound and the stream relay drains outbound.
// Neither queue is ever closed; done signals shutdown to both sides.
type sessionConn struct {
	id        string
	inbound   chan jsonrpc.Message
	outbound  chan outboundFrame
	done      chan struct{}
	closeOnce sync.Once
}

var _ mcp.Connection = (*sessionConn)(nil)

func newSessionConn(id string) *sessionConn {
	return &sessionConn{
		id:       id,
		inbound:  make(chan jsonrpc.Message, channelBufferSize),
		outbound: make(chan outboundFrame, channelBufferSize),
		done:     make(chan struct{}),
	}
}

// Read returns the next message posted by the client.
func (c *sessionConn) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case msg := <-c.inbound:
		return msg, nil
	case <-c.done:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write queues a message produced by the protocol engine for the stream.
func (c *sessionConn) Write(ctx context.Context, msg jsonrpc.Message) error {
	select {
	case <-c.done:
		return mcp.ErrConnectionClosed
	default:
	}
	select {
	case c.outbound <- outboundFrame{msg: msg}:
		return nil
	case <-c.done:
		return mcp.ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks the session closed. It is safe to call more than once.
func (c *sessionConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return nil
}

// SessionID implements mcp.Connection.
func (c *sessionConn) SessionID() string {
	return c.id
}

// Closed reports whether Close has been called.
func (c *sessionConn) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Deliver enqueues a client message for the protocol engine, waiting while
// the inbound queue is full.
func (c *sessionConn) Deliver(ctx context.Context, msg jsonrpc.Message) error {
	if c.Closed() {
		return sessionGone(c.id)
	}
	select {
	case c.inbound <- msg:
		return nil
	case <-c.done:
		return sessionGone(c.id)
	case <-ctx.Done():
		return apperrors.Wrap(apperrors.CodeDispatchCancelled, "dispatch cancelled", ctx.Err())
	}
}

// notify reports err on the stream without waiting. The frame is dropped
// when the outbound queue is full or the session is closed.
func (c *sessionConn) notify(err error) {
	if err == nil || c.Closed() {
		return
	}
	select {
	case c.outbound <- outboundFrame{err: err}:
	default:
	}
}

func sessionGone(id string) error {
	return apperrors.WithMetadata(apperrors.CodeSessionGone, "session closed", map[string]string{
		"session_id": id,
	})
}

// sessionTransport hands an already open sessionConn to the protocol engine.
type sessionTransport struct {
	conn *sessionConn
}

// Connect implements mcp.Transport.
func (t *sessionTransport) Connect(context.Context) (mcp.Connection, error) {
	return t.conn, nil
}
