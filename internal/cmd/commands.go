package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/internal/cmd/commands/admin"
	"github.com/hashicorp-forge/baasbox/internal/cmd/commands/console"
	"github.com/hashicorp-forge/baasbox/internal/cmd/commands/document"
	"github.com/hashicorp-forge/baasbox/internal/cmd/commands/raw"
	"github.com/hashicorp-forge/baasbox/internal/cmd/commands/user"
	"github.com/hashicorp-forge/baasbox/internal/cmd/commands/version"
)

// Commands returns the factories of every CLI command.
func Commands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui)

	return map[string]cli.CommandFactory{
		"login": func() (cli.Command, error) {
			return &user.LoginCommand{Command: b}, nil
		},
		"signup": func() (cli.Command, error) {
			return &user.SignupCommand{Command: b}, nil
		},
		"logout": func() (cli.Command, error) {
			return &user.LogoutCommand{Command: b}, nil
		},
		"me": func() (cli.Command, error) {
			return &user.MeCommand{Command: b}, nil
		},
		"get": func() (cli.Command, error) {
			return &raw.GetCommand{Command: b}, nil
		},
		"call": func() (cli.Command, error) {
			return &raw.CallCommand{Command: b}, nil
		},
		"document": func() (cli.Command, error) {
			return &document.Command{Command: b}, nil
		},
		"document get": func() (cli.Command, error) {
			return &document.GetCommand{Command: b}, nil
		},
		"document query": func() (cli.Command, error) {
			return &document.QueryCommand{Command: b}, nil
		},
		"document create": func() (cli.Command, error) {
			return &document.CreateCommand{Command: b}, nil
		},
		"document delete": func() (cli.Command, error) {
			return &document.DeleteCommand{Command: b}, nil
		},
		"admin": func() (cli.Command, error) {
			return &admin.Command{Command: b}, nil
		},
		"admin settings": func() (cli.Command, error) {
			return &admin.SettingsCommand{Command: b}, nil
		},
		"admin set": func() (cli.Command, error) {
			return &admin.SetCommand{Command: b}, nil
		},
		"admin endpoints": func() (cli.Command, error) {
			return &admin.EndpointsCommand{Command: b}, nil
		},
		"console": func() (cli.Command, error) {
			return &console.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
