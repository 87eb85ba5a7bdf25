//go:build windows && amd64

package netapi32

import "syscall"

var (
	modNetapi32 = syscall.NewLazyDLL("netapi32.dll")

	NetApiBufferFree = modNetapi32.NewProc("NetApiBufferFree")
)

// ERROR_MORE_DATA is returned by NetUserEnum while entries remain.
const ERROR_MORE_DATA syscall.Errno = 234
