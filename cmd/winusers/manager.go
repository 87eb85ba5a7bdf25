package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/iamacarpet/go-winusers/config"
	"github.com/iamacarpet/go-winusers/identity/user"
)

// newManager builds the Manager the commands run against.
var newManager = systemManager

func getManager(c *cli.Context) (*user.Manager, error) {
	cfg, err := config.GetConfigFromEnvironment()
	if err != nil {
		return nil, errors.Wrap(err, "error reading configuration")
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ManagerOptions(logger)
	if err != nil {
		return nil, errors.Wrap(err, "error reading configuration")
	}
	return newManager(opts...)
}

// nameArg returns the single NAME argument of a command.
func nameArg(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", errors.New("exactly one NAME argument is required")
	}
	return c.Args().First(), nil
}
