package service

import (
	"sync"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
)

// sessionRegistry maps session ids to the inbound side of their connection.
//
// Stream handlers register on open and remove on close; message handlers only
// look up. An id is never reused while its entry is present.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionConn
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*sessionConn)}
}

// Register adds conn under id. It fails when id is blank or already present.
func (r *sessionRegistry) Register(id string, conn *sessionConn) error {
	if id == "" || conn == nil {
		return apperrors.New(apperrors.CodeSessionExists, "session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[id]; exists {
		return apperrors.WithMetadata(apperrors.CodeSessionExists, "session already registered", map[string]string{
			"session_id": id,
		})
	}
	r.sessions[id] = conn
	return nil
}

// Lookup returns the connection registered under id.
func (r *sessionRegistry) Lookup(id string) (*sessionConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.sessions[id]
	return conn, ok
}

// Remove deletes id. Removing an unknown id is a no-op.
func (r *sessionRegistry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of open sessions.
func (r *sessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
