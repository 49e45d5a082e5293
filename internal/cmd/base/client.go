package base

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/baasbox/internal/config"
	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ClientFlags are the connection flags shared by every command that talks to
// a server. Flags win over the environment, which wins over the config file.
type ClientFlags struct {
	Config   string
	EnvFile  string
	URL      string
	AppCode  string
	Session  string
	Format   string
	LogLevel string

	// Loader is used to read configuration; nil means config.NewLoader().
	Loader *config.Loader
}

// Register adds the client flags to f.
func (cf *ClientFlags) Register(f *FlagSet) {
	f.StringVar(&cf.Config, "config", "", "Path to a baasbox HCL config file.")
	f.StringVar(&cf.EnvFile, "env-file", "", "Path to a .env file with BAASBOX_* variables.")
	f.StringVar(&cf.URL, "url", "", "BaasBox server URL. Overrides the config file.")
	f.StringVar(&cf.AppCode, "app-code", "", "Application code. Overrides the config file.")
	f.StringVar(&cf.Session, "session", "", "X-BB-SESSION token from a previous login.")
	f.StringVar(&cf.Format, "format", FormatJSON, "Output format: json or yaml.")
	f.StringVar(&cf.LogLevel, "log-level", "warn", "Log level: trace, debug, info, warn or error.")
}

// Client builds a client from the config file, the environment and the
// flags.
func (c *Command) Client(cf *ClientFlags) (*baasbox.Client, error) {
	if cf.Format != FormatJSON && cf.Format != FormatYAML {
		return nil, fmt.Errorf("unsupported output format %q", cf.Format)
	}

	level := hclog.LevelFromString(cf.LogLevel)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", cf.LogLevel)
	}
	c.Log.SetLevel(level)

	loader := cf.Loader
	if loader == nil {
		loader = config.NewLoader()
	}
	if cf.EnvFile != "" {
		loader = loader.WithEnvFile(cf.EnvFile)
	}

	fileCfg, err := loader.Load(cf.Config)
	if err != nil {
		return nil, err
	}

	if cf.URL != "" {
		fileCfg.BaasBox.URL = cf.URL
	}
	if cf.AppCode != "" {
		fileCfg.BaasBox.AppCode = cf.AppCode
	}
	if cf.Session != "" {
		fileCfg.BaasBox.Session = cf.Session
	}

	clientCfg, err := fileCfg.BaasBox.ClientConfig()
	if err != nil {
		return nil, err
	}
	clientCfg.Logger = c.Log

	return baasbox.New(clientCfg)
}

// Output renders v on the UI in the requested format.
func (c *Command) Output(format string, v interface{}) error {
	if val, ok := v.(baasbox.Value); ok {
		v = val.Interface()
	}

	switch format {
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to render yaml: %w", err)
		}
		c.UI.Output(strings.TrimRight(string(b), "\n"))
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render json: %w", err)
		}
		c.UI.Output(string(b))
	}
	return nil
}
