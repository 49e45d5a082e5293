package version

import (
	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of the CLI"
}

func (c *Command) Help() string {
	return `Usage: baasbox version

  Prints the version of the CLI.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("baasbox " + version.Version)
	return 0
}
