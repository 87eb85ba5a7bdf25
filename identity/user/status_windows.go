//go:build windows && amd64

package user

import (
	"strings"
	"syscall"

	so "github.com/iamacarpet/go-winusers/shared"
)

const errorGenFailure = 31

// statusErr turns a failed API's status code into an OperationError,
// attaching the system message when FormatMessage knows the code.
func statusErr(op string, code uint32) error {
	e := so.NewOperationError(op, code)
	msg := syscall.Errno(so.Win32Code(code)).Error()
	if !strings.HasPrefix(msg, "winapi error #") {
		e.Message = strings.TrimSpace(msg)
	}
	return e
}

// lastErr converts the error returned by LazyProc.Call.
func lastErr(op string, err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return statusErr(op, uint32(errno))
	}
	// The API failed without setting a last error.
	return statusErr(op, errorGenFailure)
}
