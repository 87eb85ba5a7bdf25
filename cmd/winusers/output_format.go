package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"

	so "github.com/iamacarpet/go-winusers/shared"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "table":
	case "json":
	case "yaml":
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

func printAccounts(w io.Writer, output string, accounts []so.LocalAccount) error {
	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("NAME", "FULL NAME", "SID", "FLAGS")
		for _, account := range accounts {
			table.AddRow(
				account.Name,
				account.FullName,
				account.SID,
				account.Flags,
			)
		}
		fmt.Fprintln(w, table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(accounts)
		if err != nil {
			return errors.Wrap(err, "error formatting accounts")
		}
		fmt.Fprintln(w, string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(accounts, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting accounts")
		}
		fmt.Fprintln(w, string(prettyJSON))
	}
	return nil
}

func printAccount(w io.Writer, output string, account so.LocalAccount) error {
	if strings.ToLower(output) != "table" {
		var (
			out []byte
			err error
		)
		if strings.ToLower(output) == "yaml" {
			out, err = yaml.Marshal(account)
		} else {
			out, err = json.MarshalIndent(account, "", "  ")
		}
		if err != nil {
			return errors.Wrap(err, "error formatting account")
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	table := uitable.New()
	table.AddRow("Name:", account.Name)
	table.AddRow("Full Name:", account.FullName)
	table.AddRow("Comment:", account.Comment)
	table.AddRow("SID:", account.SID)
	table.AddRow("Flags:", account.Flags)
	fmt.Fprintln(w, table)
	return nil
}
