package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/iamacarpet/go-winusers/identity/user"
)

var (
	logonTypes = map[string]user.LogonType{
		"interactive":       user.LogonInteractive,
		"network":           user.LogonNetwork,
		"batch":             user.LogonBatch,
		"service":           user.LogonService,
		"unlock":            user.LogonUnlock,
		"network-cleartext": user.LogonNetworkCleartext,
		"new-credentials":   user.LogonNewCredentials,
	}
	logonProviders = map[string]user.LogonProvider{
		"default": user.ProviderDefault,
		"winnt35": user.ProviderWinNT35,
		"winnt40": user.ProviderWinNT40,
		"winnt50": user.ProviderWinNT50,
		"virtual": user.ProviderVirtual,
	}
)

func logon(c *cli.Context) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	opts := user.LogonOptions{Domain: c.String(flagDomain)}
	if c.IsSet(flagLogonType) {
		t, ok := logonTypes[c.String(flagLogonType)]
		if !ok {
			return errors.Errorf("unknown logon type %q", c.String(flagLogonType))
		}
		opts.Type = t
	}
	if c.IsSet(flagProvider) {
		p, ok := logonProviders[c.String(flagProvider)]
		if !ok {
			return errors.Errorf("unknown logon provider %q", c.String(flagProvider))
		}
		opts.Provider = p
	}

	manager, err := getManager(c)
	if err != nil {
		return err
	}

	return manager.WithSession(name, c.String(flagPassword), opts, func(h *user.Handle) error {
		dir, err := manager.ProfileDirectory(h)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Logged on %q, profile directory %s\n", name, dir)
		return nil
	})
}
