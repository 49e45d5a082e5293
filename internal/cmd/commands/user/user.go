package user

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

type LoginCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *LoginCommand) Synopsis() string {
	return "Log in and print the session token"
}

func (c *LoginCommand) Help() string {
	return `Usage: baasbox login [options] <username> <password>

  Logs in to the server and prints the user payload. The X-BB-SESSION token
  is printed on stderr; pass it to later commands with -session or
  BAASBOX_SESSION.` + c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *LoginCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("login requires a username and a password")
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	data, err := client.Login(context.Background(), flags.Arg(0), flags.Arg(1))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Warn("Session: " + client.Session())
	if err := c.Output(c.client.Format, data); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type SignupCommand struct {
	*base.Command

	client         base.ClientFlags
	flagUser       string
	flagFriends    string
	flagRegistered string
	flagAnonymous  string
}

func (c *SignupCommand) Synopsis() string {
	return "Register a new user"
}

func (c *SignupCommand) Help() string {
	return `Usage: baasbox signup [options] <username> <password>

  Registers a user and prints the new user payload. Each visibility section
  may be given as a JSON object; sections left out are sent empty.` + c.Flags().Help()
}

func (c *SignupCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("signup", flag.ContinueOnError))
	c.client.Register(f)

	f.StringVar(&c.flagUser, "visible-by-the-user", "",
		"JSON object of fields only the user can see.")
	f.StringVar(&c.flagFriends, "visible-by-friends", "",
		"JSON object of fields friends can see.")
	f.StringVar(&c.flagRegistered, "visible-by-registered-users", "",
		"JSON object of fields every registered user can see.")
	f.StringVar(&c.flagAnonymous, "visible-by-anonymous-users", "",
		"JSON object of fields anyone can see.")

	return f
}

func (c *SignupCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("signup requires a username and a password")
		return 1
	}

	user := baasbox.NewUser{
		Username: flags.Arg(0),
		Password: flags.Arg(1),
	}
	sections := []struct {
		name string
		raw  string
		dst  *map[string]interface{}
	}{
		{"visible-by-the-user", c.flagUser, &user.VisibleByTheUser},
		{"visible-by-friends", c.flagFriends, &user.VisibleByFriends},
		{"visible-by-registered-users", c.flagRegistered, &user.VisibleByRegisteredUsers},
		{"visible-by-anonymous-users", c.flagAnonymous, &user.VisibleByAnonymousUsers},
	}
	for _, s := range sections {
		if s.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(s.raw), s.dst); err != nil {
			ui.Error(fmt.Sprintf("invalid -%s: %v", s.name, err))
			return 1
		}
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	data, err := client.Signup(context.Background(), user)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Warn("Session: " + client.Session())
	if err := c.Output(c.client.Format, data); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type LogoutCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *LogoutCommand) Synopsis() string {
	return "End a session"
}

func (c *LogoutCommand) Help() string {
	return `Usage: baasbox logout -session=<token> [options]

  Ends the given session on the server.` + c.Flags().Help()
}

func (c *LogoutCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("logout", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *LogoutCommand) Run(args []string) int {
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
	if client.Session() == "" {
		ui.Error("no session to log out; pass -session or set BAASBOX_SESSION")
		return 1
	}

	if _, err := client.Logout(context.Background()); err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Info("Logged out")
	return 0
}

type MeCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *MeCommand) Synopsis() string {
	return "Show the logged in user"
}

func (c *MeCommand) Help() string {
	return `Usage: baasbox me -session=<token> [options]

  Prints the profile of the user owning the session.` + c.Flags().Help()
}

func (c *MeCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("me", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *MeCommand) Run(args []string) int {
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

	data, err := client.Me(context.Background())
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
