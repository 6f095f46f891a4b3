package service

import (
	"fmt"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/onet-mcp/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistryLifecycle(t *testing.T) {
	registry := newSessionRegistry()
	conn := newSessionConn("abc")

	require.NoError(t, registry.Register("abc", conn))
	got, ok := registry.Lookup("abc")
	require.True(t, ok)
	assert.Same(t, conn, got)
	assert.Equal(t, 1, registry.Len())

	registry.Remove("abc")
	registry.Remove("abc")
	_, ok = registry.Lookup("abc")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestSessionRegistryRejectsDuplicateAndBlank(t *testing.T) {
	registry := newSessionRegistry()
	first := newSessionConn("abc")
	require.NoError(t, registry.Register("abc", first))

	err := registry.Register("abc", newSessionConn("abc"))
	assert.Equal(t, apperrors.CodeSessionExists, apperrors.GetCode(err))
	got, _ := registry.Lookup("abc")
	assert.Same(t, first, got)

	err = registry.Register("", newSessionConn(""))
	assert.Equal(t, apperrors.CodeSessionExists, apperrors.GetCode(err))
	assert.Equal(t, 1, registry.Len())
}

func TestSessionRegistryConcurrentAccess(t *testing.T) {
	registry := newSessionRegistry()
	const sessions = 64

	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			if err := registry.Register(id, newSessionConn(id)); err != nil {
				t.Errorf("register %s: %v", id, err)
				return
			}
			registry.Lookup(id)
			if i%2 == 0 {
				registry.Remove(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, sessions/2, registry.Len())
}
