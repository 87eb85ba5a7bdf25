//go:build windows && amd64

package internal

import (
	"golang.org/x/sys/windows"
)

// UTF16toString converts a NUL-terminated UTF-16 string owned by the OS into
// a Go string. A nil pointer yields "".
func UTF16toString(p *uint16) string {
	if p == nil {
		return ""
	}
	return windows.UTF16PtrToString(p)
}

