//go:build windows && amd64

package user

// NewSystemManager returns a Manager operating on the local machine's
// accounts, profiles and logon sessions.
func NewSystemManager(opts ...Option) *Manager {
	return NewManager(NewNetDirectory(), NewUserenvProfiles(), NewTokenSecurity(), opts...)
}
