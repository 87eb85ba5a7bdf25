package shared

import (
	"github.com/iamacarpet/go-winusers/identity/flags"
)

// LocalAccount is a snapshot of a local account record (USER_INFO_23).
type LocalAccount struct {
	Name     string      `json:"name"`
	FullName string      `json:"full_name"`
	Comment  string      `json:"comment"`
	Flags    flags.Flags `json:"flags"`
	SID      string      `json:"sid"`
}

// UpdateRequest is a partial update of an account. Nil fields are left
// untouched.
//
// Fields:
//	- FullName		replaces the user's full name
//	- Comment		replaces the account comment
//	- Flags			bits OR-ed into the stored flags
//	- ClearFlags	bits removed from the stored flags, applied after Flags;
//					may not include account type bits
type UpdateRequest struct {
	FullName   *string      `json:"full_name,omitempty"`
	Comment    *string      `json:"comment,omitempty"`
	Flags      *flags.Flags `json:"flags,omitempty"`
	ClearFlags *flags.Flags `json:"clear_flags,omitempty"`
}

// Empty reports whether the request carries no changes.
func (u UpdateRequest) Empty() bool {
	return u.FullName == nil && u.Comment == nil && u.Flags == nil && u.ClearFlags == nil
}
