package user

import (
	"sync"

	so "github.com/iamacarpet/go-winusers/shared"
)

// Handle is an authenticated security context returned by Authenticate.
// The owner must Close it exactly once; every use after Close fails with
// shared.ErrHandleClosed.
type Handle struct {
	mu      sync.Mutex
	token   uintptr
	closed  bool
	release func(uintptr) error
}

func newHandle(token uintptr, release func(uintptr) error) *Handle {
	return &Handle{token: token, release: release}
}

// Token returns the underlying token value for as long as the handle is open.
func (h *Handle) Token() (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, so.ErrHandleClosed
	}
	return h.token, nil
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Close releases the token. The handle counts as closed even when the
// release itself fails, so the token is never released twice.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return so.ErrHandleClosed
	}
	h.closed = true
	return h.release(h.token)
}
