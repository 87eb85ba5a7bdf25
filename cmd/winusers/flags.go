package main

import "github.com/urfave/cli/v2"

const (
	flagClearFlags  = "clear-flags"
	flagComment     = "comment"
	flagDomain      = "domain"
	flagFlags       = "flags"
	flagFullName    = "full-name"
	flagLogonType   = "logon-type"
	flagNewPassword = "new-password"
	flagOutput      = "output"
	flagPassword    = "password"
	flagProvider    = "provider"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in another format. Supported formats: table, " +
			"json, yaml",
		Value: "table",
	}
	cliFlagPassword = &cli.StringFlag{
		Name:    flagPassword,
		Aliases: []string{"p"},
		Usage:   "The account's password",
	}
)
