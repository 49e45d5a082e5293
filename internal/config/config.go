// Package config loads the baasbox CLI configuration from an HCL file, an
// optional .env file and the environment, in that order of precedence (later
// wins).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

// Environment variables read by Load.
const (
	EnvURL              = "BAASBOX_URL"
	EnvAppCode          = "BAASBOX_APP_CODE"
	EnvSession          = "BAASBOX_SESSION"
	EnvTimeout          = "BAASBOX_TIMEOUT"
	EnvIOSPushToken     = "BAASBOX_IOS_PUSH_TOKEN"
	EnvAndroidPushToken = "BAASBOX_ANDROID_PUSH_TOKEN"
	EnvGoogleToken      = "BAASBOX_GOOGLE_TOKEN"
	EnvGoogleSecret     = "BAASBOX_GOOGLE_SECRET"
	EnvFacebookToken    = "BAASBOX_FACEBOOK_TOKEN"
	EnvFacebookSecret   = "BAASBOX_FACEBOOK_SECRET"
	EnvTLSSkipVerify    = "BAASBOX_TLS_SKIP_VERIFY"
)

// Config is the top-level configuration file.
type Config struct {
	BaasBox *BaasBox `hcl:"baasbox,block"`
}

// BaasBox describes the server to talk to.
type BaasBox struct {
	URL           string  `hcl:"url,optional"`
	AppCode       string  `hcl:"app_code,optional"`
	Session       string  `hcl:"session,optional"`
	Timeout       string  `hcl:"timeout,optional"`
	TLSSkipVerify bool    `hcl:"tls_skip_verify,optional"`
	Push          *Push   `hcl:"push,block"`
	Social        *Social `hcl:"social,block"`
}

// Push holds device tokens for push notifications.
type Push struct {
	IOS     string `hcl:"ios,optional"`
	Android string `hcl:"android,optional"`
}

// Social holds OAuth token/secret pairs.
type Social struct {
	GoogleToken    string `hcl:"google_token,optional"`
	GoogleSecret   string `hcl:"google_secret,optional"`
	FacebookToken  string `hcl:"facebook_token,optional"`
	FacebookSecret string `hcl:"facebook_secret,optional"`
}

// Loader reads configuration. The zero value is not usable; use NewLoader.
type Loader struct {
	fs      afero.Fs
	getenv  func(string) string
	envFile string
}

// NewLoader returns a loader reading files from the OS filesystem and
// variables from the process environment.
func NewLoader() *Loader {
	return &Loader{
		fs:     afero.NewOsFs(),
		getenv: os.Getenv,
	}
}

// WithFs overrides the filesystem (useful for tests).
func (l *Loader) WithFs(fs afero.Fs) *Loader {
	if fs != nil {
		l.fs = fs
	}
	return l
}

// WithEnv overrides the environment lookup (useful for tests).
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	if getenv != nil {
		l.getenv = getenv
	}
	return l
}

// WithEnvFile sets a .env file whose variables are consulted before the
// process environment is. Variables already set in the environment win.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load reads path (which may be empty) and applies environment overrides.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := &Config{BaasBox: &BaasBox{}}

	if path != "" {
		if err := l.decodeFile(path, cfg); err != nil {
			return nil, err
		}
		if cfg.BaasBox == nil {
			cfg.BaasBox = &BaasBox{}
		}
	}

	getenv := l.getenv
	if l.envFile != "" {
		dotenv, err := l.readEnvFile(l.envFile)
		if err != nil {
			return nil, err
		}
		getenv = func(key string) string {
			if v := l.getenv(key); v != "" {
				return v
			}
			return dotenv[key]
		}
	}

	cfg.BaasBox.applyEnv(getenv)
	return cfg, nil
}

func (l *Loader) decodeFile(path string, cfg *Config) error {
	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check configuration file: %w", err)
	}
	if !exists {
		return fmt.Errorf("configuration file not found: %s", path)
	}

	src, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	// hclsimple picks the syntax from the file extension.
	if err := hclsimple.Decode(path, src, nil, cfg); err != nil {
		return fmt.Errorf("failed to parse configuration file: %w", err)
	}
	return nil
}

func (l *Loader) readEnvFile(path string) (map[string]string, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file: %w", err)
	}
	return vars, nil
}

func (b *BaasBox) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&b.URL, EnvURL)
	set(&b.AppCode, EnvAppCode)
	set(&b.Session, EnvSession)
	set(&b.Timeout, EnvTimeout)

	if v := getenv(EnvTLSSkipVerify); v == "1" || v == "true" {
		b.TLSSkipVerify = true
	}

	if b.Push == nil {
		b.Push = &Push{}
	}
	set(&b.Push.IOS, EnvIOSPushToken)
	set(&b.Push.Android, EnvAndroidPushToken)

	if b.Social == nil {
		b.Social = &Social{}
	}
	set(&b.Social.GoogleToken, EnvGoogleToken)
	set(&b.Social.GoogleSecret, EnvGoogleSecret)
	set(&b.Social.FacebookToken, EnvFacebookToken)
	set(&b.Social.FacebookSecret, EnvFacebookSecret)
}

// ClientConfig converts the file configuration into a client configuration.
// Validation of the result is left to baasbox.New.
func (b *BaasBox) ClientConfig() (baasbox.Config, error) {
	cfg := baasbox.Config{
		BaseURL: b.URL,
		AppCode: b.AppCode,
		Session: b.Session,
	}

	if b.Timeout != "" {
		d, err := time.ParseDuration(b.Timeout)
		if err != nil {
			return baasbox.Config{}, fmt.Errorf("invalid timeout %q: %w", b.Timeout, err)
		}
		cfg.Timeout = d
	}

	if b.TLSSkipVerify {
		verify := false
		cfg.TLSVerify = &verify
	}

	if b.Push != nil {
		cfg.DeviceTokens = baasbox.DeviceTokens{
			IOS:     b.Push.IOS,
			Android: b.Push.Android,
		}
	}

	if b.Social != nil {
		cfg.SocialTokens = baasbox.SocialTokens{
			GoogleToken:    b.Social.GoogleToken,
			GoogleSecret:   b.Social.GoogleSecret,
			FacebookToken:  b.Social.FacebookToken,
			FacebookSecret: b.Social.FacebookSecret,
		}
	}

	return cfg, nil
}
