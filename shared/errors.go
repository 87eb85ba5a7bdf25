package shared

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status codes the account operations react to. Error code enumerations
// taken from MS-ERREF documentation:
// https://msdn.microsoft.com/en-us/library/cc231196.aspx
const (
	ERROR_FILE_NOT_FOUND      uint32 = 2    // 0x00000002
	ERROR_ACCESS_DENIED       uint32 = 5    // 0x00000005
	ERROR_INVALID_PASSWORD    uint32 = 86   // 0x00000056
	ERROR_ALREADY_EXISTS      uint32 = 183  // 0x000000B7
	ERROR_LOGON_FAILURE       uint32 = 1326 // 0x0000052E
	ERROR_ACCOUNT_RESTRICTION uint32 = 1327 // 0x0000052F
	NERR_BadPassword          uint32 = 2203 // 0x0000089B
	NERR_UserNotFound         uint32 = 2221 // 0x000008AD
	NERR_UserExists           uint32 = 2224 // 0x000008B0
	NERR_PasswordTooShort     uint32 = 2245 // 0x000008C5

	facilityWin32 uint32 = 0x80070000
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("the account or profile does not exist")
	ErrAlreadyExists      = errors.New("the account or profile already exists")
	ErrAccessDenied       = errors.New("access is denied")
	ErrInvalidPassword    = errors.New("the specified network password is not correct")
	ErrLogonFailure       = errors.New("the user name or password is incorrect")
	ErrAccountRestriction = errors.New("account restrictions are preventing this user from signing in")
	ErrPasswordPolicy     = errors.New("the password does not meet the password policy requirements")
	ErrHandleClosed       = errors.New("the security context handle has already been closed")
)

// Win32Code strips the HRESULT_FROM_WIN32 wrapping from code, if present.
func Win32Code(code uint32) uint32 {
	if code&0xFFFF0000 == facilityWin32 {
		return code & 0xFFFF
	}
	return code
}

// codeErr converts status codes into the matching sentinel, or nil.
func codeErr(code uint32) error {
	switch Win32Code(code) {
	case NERR_UserNotFound, ERROR_FILE_NOT_FOUND:
		return ErrNotFound
	case NERR_UserExists, ERROR_ALREADY_EXISTS:
		return ErrAlreadyExists
	case ERROR_ACCESS_DENIED:
		return ErrAccessDenied
	case ERROR_INVALID_PASSWORD:
		return ErrInvalidPassword
	case ERROR_LOGON_FAILURE:
		return ErrLogonFailure
	case ERROR_ACCOUNT_RESTRICTION:
		return ErrAccountRestriction
	case NERR_BadPassword, NERR_PasswordTooShort:
		return ErrPasswordPolicy
	}
	return nil
}

// OperationError reports a failed system call together with the raw status
// code it returned.
type OperationError struct {
	// Op is the failing system call, e.g. "NetUserAdd".
	Op   string
	Code uint32
	// Message is the system text for Code, when the adapter could get one.
	Message string
}

func (e *OperationError) Error() string {
	msg := e.Message
	if msg == "" {
		if known := codeErr(e.Code); known != nil {
			msg = known.Error()
		} else {
			msg = "unknown error"
		}
	}
	return fmt.Sprintf("%s: %s (code %d)", e.Op, msg, e.Code)
}

// Is lets errors.Is match an OperationError against the sentinels above.
func (e *OperationError) Is(target error) bool {
	known := codeErr(e.Code)
	return known != nil && known == target
}

// NewOperationError builds an OperationError for op and code.
func NewOperationError(op string, code uint32) *OperationError {
	return &OperationError{Op: op, Code: code}
}

// ValidationError reports malformed input, detected before any system call.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Reason)
}

// Is matches ErrInvalidArgument.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// StatusCode returns the status code carried anywhere in err's chain.
func StatusCode(err error) (uint32, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Code, true
	}
	return 0, false
}
