package document

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Work with documents of a collection"
}

func (c *Command) Help() string {
	return `Usage: baasbox document <subcommand> [options] [args]

  This command groups subcommands for reading and writing documents.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type GetCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *GetCommand) Synopsis() string {
	return "Print one document"
}

func (c *GetCommand) Help() string {
	return `Usage: baasbox document get [options] <collection> <id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("document get", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("document get requires a collection and an id")
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	data, err := client.GetDocument(context.Background(), flags.Arg(0), flags.Arg(1))
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

type QueryCommand struct {
	*base.Command

	client      base.ClientFlags
	flagWhere   string
	flagFields  string
	flagOrderBy string
	flagPage    int
	flagPerPage int
	flagCount   bool
	flagParams  base.StringSliceFlag
}

func (c *QueryCommand) Synopsis() string {
	return "List or count the documents of a collection"
}

func (c *QueryCommand) Help() string {
	return `Usage: baasbox document query [options] <collection>

  Lists the documents the user can read. -where takes a BaasBox where clause
  and may use '?' placeholders filled in order by -param.

  Example:
    baasbox document query -where="title = ?" -param=hello posts` + c.Flags().Help()
}

func (c *QueryCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("document query", flag.ContinueOnError))
	c.client.Register(f)

	c.flagParams = nil
	f.StringVar(&c.flagWhere, "where", "", "Where clause.")
	f.StringVar(&c.flagFields, "fields", "", "Comma separated fields to return.")
	f.StringVar(&c.flagOrderBy, "order-by", "", "Sort clause, e.g. \"title desc\".")
	f.IntVar(&c.flagPage, "page", -1, "Page number, starting at 0. Requires -records-per-page.")
	f.IntVar(&c.flagPerPage, "records-per-page", 0, "Documents per page.")
	f.BoolVar(&c.flagCount, "count", false, "Print only the number of matching documents.")
	f.Var(&c.flagParams, "param", "Value for the next '?' placeholder. May be repeated.")

	return f
}

func (c *QueryCommand) criteria() (*baasbox.Criteria, error) {
	criteria := &baasbox.Criteria{}
	if c.flagPage >= 0 {
		if c.flagPerPage <= 0 {
			return nil, fmt.Errorf("-page requires -records-per-page")
		}
		criteria = baasbox.Paged(c.flagPage, c.flagPerPage)
	}

	criteria.Where = c.flagWhere
	criteria.Fields = c.flagFields
	criteria.OrderBy = c.flagOrderBy
	criteria.Params = c.flagParams
	return criteria, nil
}

func (c *QueryCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("document query requires a collection")
		return 1
	}

	criteria, err := c.criteria()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	if c.flagCount {
		n, err := client.CountDocuments(context.Background(), flags.Arg(0), criteria)
		if err != nil {
			ui.Error(err.Error())
			return 1
		}
		ui.Output(fmt.Sprintf("%d", n))
		return 0
	}

	data, err := client.QueryDocuments(context.Background(), flags.Arg(0), criteria)
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

type CreateCommand struct {
	*base.Command

	client base.ClientFlags

	// Stdin is read when the body argument is "-". Defaults to os.Stdin.
	Stdin io.Reader
}

func (c *CreateCommand) Synopsis() string {
	return "Create a document"
}

func (c *CreateCommand) Help() string {
	return `Usage: baasbox document create [options] <collection> <json|->

  Stores a JSON object as a new document and prints it. Pass "-" to read the
  object from stdin.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("document create", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("document create requires a collection and a JSON object")
		return 1
	}

	raw := []byte(flags.Arg(1))
	if flags.Arg(1) == "-" {
		stdin := c.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			ui.Error(fmt.Sprintf("error reading stdin: %v", err))
			return 1
		}
		raw = b
	}

	body, err := baasbox.ParseBody(raw)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	data, err := client.CreateDocument(context.Background(), flags.Arg(0), body)
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

type DeleteCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a document"
}

func (c *DeleteCommand) Help() string {
	return `Usage: baasbox document delete [options] <collection> <id>` + c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("document delete", flag.ContinueOnError))
	c.client.Register(f)
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("document delete requires a collection and an id")
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	v, err := client.DeleteDocument(context.Background(), flags.Arg(0), flags.Arg(1))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	msg, _ := v.AsString()
	ui.Info(msg)
	return 0
}
