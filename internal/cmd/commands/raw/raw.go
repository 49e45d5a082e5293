package raw

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

type GetCommand struct {
	*base.Command

	client    base.ClientFlags
	flagQuery string
}

func (c *GetCommand) Synopsis() string {
	return "GET any resource and print its data"
}

func (c *GetCommand) Help() string {
	return `Usage: baasbox get [options] <resource> [argument]

  Issues GET <url>/<resource>[/<argument>][?<query>] and prints the "data"
  field of the response. The query is percent-encoded as a whole.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	c.client.Register(f)
	f.StringVar(&c.flagQuery, "query", "", "Query string appended after '?'.")
	return f
}

func (c *GetCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() < 1 || flags.NArg() > 2 {
		ui.Error("get requires a resource and an optional argument")
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	data, err := client.Get(context.Background(), flags.Arg(0), flags.Arg(1), c.flagQuery)
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

type CallCommand struct {
	*base.Command

	client      base.ClientFlags
	flagBody    string
	flagForm    bool
	flagHeaders base.KeyValueFlag
}

func (c *CallCommand) Synopsis() string {
	return "Call an arbitrary endpoint and print the whole response"
}

func (c *CallCommand) Help() string {
	return `Usage: baasbox call [options] <method> <path>

  Calls an endpoint the CLI has no command for. The app code and session
  headers are always set by the client; -header adds others.

  Example:
    baasbox call -session=$TOKEN -body='{"role":"backoffice"}' PUT admin/user/bob` + c.Flags().Help()
}

func (c *CallCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("call", flag.ContinueOnError))
	c.client.Register(f)

	c.flagHeaders = base.KeyValueFlag{}
	f.StringVar(&c.flagBody, "body", "", "JSON object sent as the request body.")
	f.BoolVar(&c.flagForm, "form", false, "Send the body form-encoded instead of as JSON.")
	f.Var(c.flagHeaders, "header", "Extra header as name=value. May be repeated.")

	return f
}

func (c *CallCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("call requires a method and a path")
		return 1
	}

	call := baasbox.CustomCall{
		Method:  strings.ToUpper(flags.Arg(0)),
		Path:    flags.Arg(1),
		Headers: http.Header{},
	}
	for k, vs := range c.flagHeaders {
		for _, v := range vs {
			call.Headers.Add(k, v)
		}
	}
	if c.flagBody != "" {
		body, err := baasbox.ParseBody([]byte(c.flagBody))
		if err != nil {
			ui.Error(fmt.Sprintf("invalid -body: %v", err))
			return 1
		}
		call.Body = body
	}
	if c.flagForm {
		call.Encoding = baasbox.EncodingForm
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	resp, err := client.Custom(context.Background(), call)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Warn(fmt.Sprintf("HTTP %d", resp.StatusCode))
	out := interface{}(resp.Body)
	if resp.Body.IsNull() && len(resp.Raw) > 0 {
		out = string(resp.Raw)
	}
	if err := c.Output(c.client.Format, out); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
