package user

import (
	"runtime"
)

// WithSession authenticates the account, hands the handle to fn and closes
// it when fn returns, whatever the outcome. An error from fn takes
// precedence over an error from closing.
func (m *Manager) WithSession(name, password string, opts LogonOptions, fn func(*Handle) error) (err error) {
	h, err := m.Authenticate(name, password, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.CloseHandle(h); err == nil {
			err = cerr
		}
	}()
	return fn(h)
}

// Impersonating runs fn while the calling goroutine impersonates h.
// Impersonation belongs to the OS thread, so the goroutine is locked to its
// thread for the duration. If reverting fails the thread stays locked, and
// the runtime discards it when the goroutine exits rather than reuse a
// thread that still carries the impersonated context.
func (m *Manager) Impersonating(h *Handle, fn func() error) (err error) {
	runtime.LockOSThread()

	if err := m.Impersonate(h); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	defer func() {
		rerr := m.RevertToSelf()
		if rerr != nil {
			m.logger.Error("revert to self failed, thread left locked", "error", rerr)
			if err == nil {
				err = rerr
			}
			return
		}
		runtime.UnlockOSThread()
	}()
	return fn()
}
