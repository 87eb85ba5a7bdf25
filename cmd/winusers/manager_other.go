//go:build !(windows && amd64)

package main

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/iamacarpet/go-winusers/identity/user"
)

func systemManager(...user.Option) (*user.Manager, error) {
	return nil, errors.Errorf(
		"local accounts are not supported on %s/%s",
		runtime.GOOS,
		runtime.GOARCH,
	)
}
