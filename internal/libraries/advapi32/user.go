//go:build windows && amd64

package advapi32

import "syscall"

var (
	modAdvapi32 = syscall.NewLazyDLL("advapi32.dll")

	LogonUserW              = modAdvapi32.NewProc("LogonUserW")
	ImpersonateLoggedOnUser = modAdvapi32.NewProc("ImpersonateLoggedOnUser")
)
