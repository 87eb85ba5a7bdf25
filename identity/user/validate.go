package user

import (
	"strings"
	"unicode/utf16"

	"github.com/iamacarpet/go-winusers/identity/flags"
	so "github.com/iamacarpet/go-winusers/shared"
)

// UserNameCharLimit is the SAM limit on account name length, in UTF-16 units.
const UserNameCharLimit = 20

const invalidNameChars = `"/\[]:;|=,+*?<>`

func invalid(op, field, reason string) error {
	return &so.ValidationError{Op: op, Field: field, Reason: reason}
}

// validateName checks a name passed to the OS. Names that cannot exist are
// left for the directory to report as not found.
func validateName(op, name string) error {
	switch {
	case name == "":
		return invalid(op, "name", "must not be empty")
	case strings.IndexByte(name, 0) >= 0:
		return invalid(op, "name", "must not contain NUL")
	}
	return nil
}

// validateNewName applies the SAM naming rules for new accounts.
func validateNewName(op, name string) error {
	if err := validateName(op, name); err != nil {
		return err
	}
	switch {
	case len(utf16.Encode([]rune(name))) > UserNameCharLimit:
		return invalid(op, "name", "longer than 20 characters")
	case strings.ContainsAny(name, invalidNameChars):
		return invalid(op, "name", "contains one of "+invalidNameChars)
	case strings.Trim(name, ". ") == "":
		return invalid(op, "name", "must not consist only of periods and spaces")
	case strings.HasSuffix(name, "."):
		return invalid(op, "name", "must not end with a period")
	}
	return nil
}

// validateText checks a string that is passed to the OS as-is.
func validateText(op, field, value string) error {
	if strings.IndexByte(value, 0) >= 0 {
		return invalid(op, field, "must not contain NUL")
	}
	return nil
}

func validateFlags(op, field string, f flags.Flags) error {
	if err := flags.Validate(f); err != nil {
		return invalid(op, field, err.Error())
	}
	return nil
}

func validateUpdate(op string, req so.UpdateRequest) error {
	if req.FullName != nil {
		if err := validateText(op, "full name", *req.FullName); err != nil {
			return err
		}
	}
	if req.Comment != nil {
		if err := validateText(op, "comment", *req.Comment); err != nil {
			return err
		}
	}
	if req.Flags != nil {
		if err := validateFlags(op, "flags", *req.Flags); err != nil {
			return err
		}
	}
	if req.ClearFlags != nil {
		if err := validateFlags(op, "clear flags", *req.ClearFlags); err != nil {
			return err
		}
		if req.ClearFlags.AccountType() != 0 {
			return invalid(op, "clear flags", "account type bits cannot be cleared")
		}
	}
	return nil
}

func validateLogon(op string, o LogonOptions) error {
	if err := validateText(op, "domain", o.Domain); err != nil {
		return err
	}
	if !o.Type.Valid() {
		return invalid(op, "logon type", o.Type.String())
	}
	if !o.Provider.Valid() {
		return invalid(op, "logon provider", o.Provider.String())
	}
	return nil
}

func validateHandle(op string, h *Handle) (uintptr, error) {
	if h == nil {
		return 0, invalid(op, "handle", "must not be nil")
	}
	return h.Token()
}
