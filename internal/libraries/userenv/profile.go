//go:build windows && amd64

package userenv

import "syscall"

var (
	modUserenv = syscall.NewLazyDLL("userenv.dll")

	CreateProfile  = modUserenv.NewProc("CreateProfile")
	DeleteProfileW = modUserenv.NewProc("DeleteProfileW")
)

// MAX_PATH bounds the profile path written by CreateProfile.
const MAX_PATH = 260
