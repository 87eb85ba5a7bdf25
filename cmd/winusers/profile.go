package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func profileCreate(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	path, created, err := manager.CreateProfile(name)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(c.App.Writer, "No profile created for %q; it exists already or the account does not.\n", name)
		return nil
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func profileDelete(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	deleted, err := manager.DeleteProfile(name)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(c.App.Writer, "No profile found for %q.\n", name)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Profile of %q deleted.\n", name)
	return nil
}

func profilePath(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	path, ok, err := manager.ProfilePath(name)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(c.App.Writer, "No profile found for %q.\n", name)
		return nil
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}
