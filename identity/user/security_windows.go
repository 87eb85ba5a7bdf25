//go:build windows && amd64

package user

import (
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/iamacarpet/go-winusers/internal/libraries/advapi32"
)

// tokenSecurity is the SecurityContext backed by LogonUserW and the
// impersonation functions of advapi32.dll.
type tokenSecurity struct{}

// NewTokenSecurity returns the SecurityContext of the local machine.
func NewTokenSecurity() SecurityContext {
	return tokenSecurity{}
}

func (tokenSecurity) Logon(name, domain, password string, logonType LogonType, provider LogonProvider) (uintptr, error) {
	var token windows.Token
	uPointer, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return 0, errors.Wrap(err, "unable to encode username to UTF16")
	}
	dPointer, err := syscall.UTF16PtrFromString(domain)
	if err != nil {
		return 0, errors.Wrap(err, "unable to encode domain to UTF16")
	}
	pPointer, err := syscall.UTF16PtrFromString(password)
	if err != nil {
		return 0, errors.Wrap(err, "unable to encode password to UTF16")
	}
	r1, _, err := advapi32.LogonUserW.Call(
		uintptr(unsafe.Pointer(uPointer)),
		uintptr(unsafe.Pointer(dPointer)),
		uintptr(unsafe.Pointer(pPointer)),
		uintptr(logonType),
		uintptr(provider),
		uintptr(unsafe.Pointer(&token)),
	)
	if r1 == 0 {
		return 0, lastErr("LogonUserW", err)
	}
	return uintptr(token), nil
}

func (tokenSecurity) Impersonate(token uintptr) error {
	r1, _, err := advapi32.ImpersonateLoggedOnUser.Call(token)
	if r1 == 0 {
		return lastErr("ImpersonateLoggedOnUser", err)
	}
	return nil
}

func (tokenSecurity) RevertToSelf() error {
	if err := windows.RevertToSelf(); err != nil {
		return lastErr("RevertToSelf", err)
	}
	return nil
}

func (tokenSecurity) ProfileDirectory(token uintptr) (string, error) {
	dir, err := windows.Token(token).GetUserProfileDirectory()
	if err != nil {
		return "", lastErr("GetUserProfileDirectoryW", err)
	}
	return dir, nil
}

func (tokenSecurity) Close(token uintptr) error {
	if err := windows.CloseHandle(windows.Handle(token)); err != nil {
		return lastErr("CloseHandle", err)
	}
	return nil
}
