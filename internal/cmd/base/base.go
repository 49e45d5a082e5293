package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand returns a Command writing logs to log and output to ui.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
	}
}

// FlagSet wraps a flag.FlagSet so commands can render their flags in Help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned rather than printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{FlagSet: f}
}

// Help renders the flags for a command's help text.
func (f *FlagSet) Help() string {
	var out strings.Builder
	out.WriteString("\n\nOptions:\n")

	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&out, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&out, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&out, "\n      %s\n", fl.Usage)
	})

	return strings.TrimRight(out.String(), "\n")
}

// KeyValueFlag collects repeated key=value flags.
type KeyValueFlag map[string][]string

func (kv KeyValueFlag) String() string {
	parts := make([]string, 0, len(kv))
	for k, vs := range kv {
		for _, v := range vs {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (kv KeyValueFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	kv[k] = append(kv[k], v)
	return nil
}

// StringSliceFlag collects repeated flags in order.
type StringSliceFlag []string

func (s *StringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

// Set implements flag.Value.
func (s *StringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}
