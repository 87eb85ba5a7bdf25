//go:build windows && amd64

package main

import "github.com/iamacarpet/go-winusers/identity/user"

func systemManager(opts ...user.Option) (*user.Manager, error) {
	return user.NewSystemManager(opts...), nil
}
