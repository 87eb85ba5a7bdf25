package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\n%s\n\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "winusers"
	app.Usage = "Manage local Windows accounts, their profiles and logons"
	app.Commands = []*cli.Command{
		{
			Name:      "create",
			Usage:     "Create a local account",
			ArgsUsage: "NAME",
			Description: "Succeeds without changes when the account already " +
				"exists.",
			Flags: []cli.Flag{
				cliFlagPassword,
				&cli.StringFlag{
					Name:  flagFlags,
					Usage: "Account flags, e.g. \"DONT_EXPIRE_PASSWD | PASSWD_CANT_CHANGE\"",
				},
			},
			Action: accountCreate,
		},
		{
			Name:      "delete",
			Usage:     "Delete a local account",
			ArgsUsage: "NAME",
			Action:    accountDelete,
		},
		{
			Name:      "get",
			Usage:     "Get a local account",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: accountGet,
		},
		{
			Name:  "list",
			Usage: "List local accounts",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: accountList,
		},
		{
			Name:      "logon",
			Usage:     "Log an account on and print its profile directory",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				cliFlagPassword,
				&cli.StringFlag{
					Name:    flagDomain,
					Aliases: []string{"d"},
					Usage:   "The logon domain (default from WINUSERS_LOGON_DOMAIN)",
				},
				&cli.StringFlag{
					Name: flagLogonType,
					Usage: "One of interactive, network, batch, service, unlock, " +
						"network-cleartext, new-credentials",
				},
				&cli.StringFlag{
					Name:  flagProvider,
					Usage: "One of default, winnt35, winnt40, winnt50, virtual",
				},
			},
			Action: logon,
		},
		{
			Name:      "passwd",
			Usage:     "Change an account's password",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				cliFlagPassword,
				&cli.StringFlag{
					Name:     flagNewPassword,
					Aliases:  []string{"n"},
					Usage:    "The new password",
					Required: true,
				},
			},
			Action: accountPasswd,
		},
		{
			Name:  "profile",
			Usage: "Manage account profiles",
			Subcommands: []*cli.Command{
				{
					Name:      "create",
					Usage:     "Create an account's profile",
					ArgsUsage: "NAME",
					Action:    profileCreate,
				},
				{
					Name:      "delete",
					Usage:     "Delete an account's profile",
					ArgsUsage: "NAME",
					Action:    profileDelete,
				},
				{
					Name:      "path",
					Usage:     "Print an account's profile directory",
					ArgsUsage: "NAME",
					Action:    profilePath,
				},
			},
		},
		{
			Name:      "update",
			Usage:     "Update a local account",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagFullName,
					Usage: "Replace the full name",
				},
				&cli.StringFlag{
					Name:  flagComment,
					Usage: "Replace the comment",
				},
				&cli.StringFlag{
					Name:  flagFlags,
					Usage: "Flags to set",
				},
				&cli.StringFlag{
					Name:  flagClearFlags,
					Usage: "Flags to clear",
				},
			},
			Action: accountUpdate,
		},
	}
	return app
}
