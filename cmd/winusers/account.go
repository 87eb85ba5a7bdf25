package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/iamacarpet/go-winusers/identity/flags"
	so "github.com/iamacarpet/go-winusers/shared"
)

func accountCreate(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}
	f, err := flags.Parse(c.String(flagFlags))
	if err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	created, err := manager.Create(name, c.String(flagPassword), f)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(c.App.Writer, "Account %q already exists.\n", name)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Account %q created.\n", name)
	return nil
}

func accountDelete(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	deleted, err := manager.Delete(name)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(c.App.Writer, "Account %q not found.\n", name)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Account %q deleted.\n", name)
	return nil
}

func accountGet(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	account, err := manager.Get(name)
	if err != nil {
		return err
	}
	if account == nil {
		return errors.Errorf("account %q not found", name)
	}
	return printAccount(c.App.Writer, output, *account)
}

func accountList(c *cli.Context) error {
	if c.Args().Len() != 0 {
		return errors.New("list requires no arguments")
	}
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	accounts, err := manager.List()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(c.App.Writer, "No accounts found.")
		return nil
	}
	return printAccounts(c.App.Writer, output, accounts)
}

func accountUpdate(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	req := so.UpdateRequest{}
	if c.IsSet(flagFullName) {
		fullName := c.String(flagFullName)
		req.FullName = &fullName
	}
	if c.IsSet(flagComment) {
		comment := c.String(flagComment)
		req.Comment = &comment
	}
	if c.IsSet(flagFlags) {
		f, err := flags.Parse(c.String(flagFlags))
		if err != nil {
			return err
		}
		req.Flags = &f
	}
	if c.IsSet(flagClearFlags) {
		f, err := flags.Parse(c.String(flagClearFlags))
		if err != nil {
			return err
		}
		req.ClearFlags = &f
	}
	if req.Empty() {
		return errors.New("nothing to update")
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	if err := manager.Update(name, req); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Account %q updated.\n", name)
	return nil
}

func accountPasswd(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	if err := manager.ChangePassword(
		name,
		c.String(flagPassword),
		c.String(flagNewPassword),
	); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Password of account %q changed.\n", name)
	return nil
}
