package console

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/browser"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
)

type Command struct {
	*base.Command

	client    base.ClientFlags
	flagPrint bool

	// OpenURL opens the console. Defaults to the system browser.
	OpenURL func(url string) error
}

func (c *Command) Synopsis() string {
	return "Open the server's admin console in a browser"
}

func (c *Command) Help() string {
	return `Usage: baasbox console [options]

  Opens <url>/console, the web console served by BaasBox, in the default
  browser.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("console", flag.ContinueOnError))
	c.client.Register(f)
	f.BoolVar(&c.flagPrint, "print", false, "Print the console URL instead of opening it.")
	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	consoleURL := strings.TrimRight(client.BaseURL(), "/") + "/console"

	if c.flagPrint {
		ui.Output(consoleURL)
		return 0
	}

	open := c.OpenURL
	if open == nil {
		open = openBrowser
	}
	if err := open(consoleURL); err != nil {
		ui.Error(fmt.Sprintf("could not open browser: %v", err))
		ui.Output(consoleURL)
		return 1
	}

	ui.Info("Opened " + consoleURL)
	return 0
}

// openBrowser opens url without letting the launcher write to our terminal.
func openBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
