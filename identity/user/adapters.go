package user

import (
	"github.com/iamacarpet/go-winusers/identity/flags"
	so "github.com/iamacarpet/go-winusers/shared"
)

// Directory reads and writes local account records. Failures are reported
// as *shared.OperationError carrying the raw status code.
type Directory interface {
	// Lookup fails with NERR_UserNotFound when the account does not exist.
	Lookup(name string) (so.LocalAccount, error)
	// Enumerate lists the names of the normal local accounts.
	Enumerate() ([]string, error)
	// Add fails with NERR_UserExists when the name is taken.
	Add(name, password string, f flags.Flags) error
	// Remove fails with NERR_UserNotFound when the account does not exist.
	Remove(name string) error
	// Update applies the non-nil fields of req. Flags are OR-ed into the
	// stored value and ClearFlags removed from it; all other stored bits are
	// preserved.
	Update(name string, req so.UpdateRequest) error
	ChangePassword(name, oldPassword, newPassword string) error
}

// ProfileStore manages the profile directories keyed by account SID.
type ProfileStore interface {
	// Create fails with ERROR_ALREADY_EXISTS (possibly as an HRESULT) when
	// the SID already has a profile.
	Create(sid, name string) (string, error)
	// Delete fails with ERROR_FILE_NOT_FOUND when there is no profile.
	Delete(sid string) error
	// Lookup fails with ERROR_FILE_NOT_FOUND when there is no profile.
	Lookup(sid string) (string, error)
}

// SecurityContext authenticates credentials and switches the calling
// thread's security context. Tokens are raw OS handle values.
type SecurityContext interface {
	Logon(name, domain, password string, logonType LogonType, provider LogonProvider) (uintptr, error)
	Impersonate(token uintptr) error
	RevertToSelf() error
	ProfileDirectory(token uintptr) (string, error)
	Close(token uintptr) error
}
