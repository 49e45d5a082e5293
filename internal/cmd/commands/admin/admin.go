package admin

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage server settings and endpoint groups"
}

func (c *Command) Help() string {
	return `Usage: baasbox admin <subcommand> [options] [args]

  This command groups subcommands that require an administrator session.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// parseSection accepts section names in any case style, e.g.
// "password-recovery", "password_recovery" or "PasswordRecovery".
func parseSection(name string) (baasbox.Section, error) {
	section, err := baasbox.ParseSection(strcase.ToCamel(name))
	if err != nil {
		names := make([]string, len(baasbox.Sections))
		for i, s := range baasbox.Sections {
			names[i] = strcase.ToKebab(string(s))
		}
		return "", fmt.Errorf("%w (expected one of: %s)", err, strings.Join(names, ", "))
	}
	return section, nil
}

type SettingsCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *SettingsCommand) Synopsis() string {
	return "Print server settings"
}

func (c *SettingsCommand) Help() string {
	return `Usage: baasbox admin settings [options] [section]

  Prints every setting, or the settings of one section (password-recovery,
  application, push, images).` + c.Flags().Help()
}

func (c *SettingsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("admin settings", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *SettingsCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() > 1 {
		ui.Error("admin settings takes at most one section")
		return 1
	}

	var section baasbox.Section
	if flags.NArg() == 1 {
		s, err := parseSection(flags.Arg(0))
		if err != nil {
			ui.Error(err.Error())
			return 1
		}
		section = s
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	var data baasbox.Value
	if section == "" {
		data, err = client.AdminSettings(context.Background())
	} else {
		data, err = client.AdminSection(context.Background(), section)
	}
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if err := c.Output(c.client.Format, data); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type SetCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *SetCommand) Synopsis() string {
	return "Change a server setting"
}

func (c *SetCommand) Help() string {
	return `Usage: baasbox admin set [options] <section> <key> <value>

  Example:
    baasbox admin set -session=$TOKEN password-recovery email.from admin@example.com` + c.Flags().Help()
}

func (c *SetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("admin set", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *SetCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 3 {
		ui.Error("admin set requires a section, a key and a value")
		return 1
	}

	section, err := parseSection(flags.Arg(0))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	data, err := client.AdminUpdateSetting(context.Background(), section, flags.Arg(1), flags.Arg(2))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if err := c.Output(c.client.Format, data); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type EndpointsCommand struct {
	*base.Command

	client      base.ClientFlags
	flagEnable  bool
	flagDisable bool
}

func (c *EndpointsCommand) Synopsis() string {
	return "List, enable or disable endpoint groups"
}

func (c *EndpointsCommand) Help() string {
	return `Usage: baasbox admin endpoints [options] [group]

  Without a group, lists every endpoint group. With a group, prints it, or
  switches it on or off with -enable or -disable.` + c.Flags().Help()
}

func (c *EndpointsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("admin endpoints", flag.ContinueOnError))
	c.client.Register(f)

	f.BoolVar(&c.flagEnable, "enable", false, "Enable the group.")
	f.BoolVar(&c.flagDisable, "disable", false, "Disable the group.")

	return f
}

func (c *EndpointsCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() > 1 {
		ui.Error("admin endpoints takes at most one group")
		return 1
	}
	if c.flagEnable && c.flagDisable {
		ui.Error("-enable and -disable are mutually exclusive")
		return 1
	}
	group := flags.Arg(0)
	if group == "" && (c.flagEnable || c.flagDisable) {
		ui.Error("-enable and -disable require a group")
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()
	var data baasbox.Value
	switch {
	case c.flagEnable:
		data, err = client.AdminEnableEndpoint(ctx, group)
	case c.flagDisable:
		data, err = client.AdminDisableEndpoint(ctx, group)
	case group != "":
		data, err = client.AdminEndpoint(ctx, group)
	default:
		data, err = client.AdminEndpoints(ctx)
	}
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if err := c.Output(c.client.Format, data); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
