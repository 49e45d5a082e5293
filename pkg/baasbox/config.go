package baasbox

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// DefaultAppCode is the application code a fresh BaasBox server is started
// with.
const DefaultAppCode = "1234567890"

// Config contains everything a Client needs to talk to a BaasBox server.
//
// Example configuration (HCL):
//
//	baasbox {
//	  url      = "http://localhost:9000"
//	  app_code = "1234567890"
//	}
type Config struct {
	// BaseURL is where all API calls are made, e.g. "http://localhost:9000".
	BaseURL string `json:"baseUrl"`

	// AppCode identifies the application to the server.
	// Default: DefaultAppCode
	AppCode string `json:"appCode,omitempty"`

	// Session is an X-BB-SESSION token obtained earlier. Optional.
	Session string `json:"-"`

	// DeviceTokens are the push tokens used by EnablePush and DisablePush.
	DeviceTokens DeviceTokens `json:"deviceTokens"`

	// SocialTokens are the OAuth credentials used by the social endpoints.
	SocialTokens SocialTokens `json:"-"`

	// Timeout for a single request. Zero means no timeout; callers bound
	// requests with their context instead.
	Timeout time.Duration `json:"timeout,omitempty"`

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development with self-signed certs.
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// HTTPClient overrides the client built from Timeout and TLSVerify.
	HTTPClient *http.Client `json:"-"`

	// Logger receives request logs. Default: null logger.
	Logger hclog.Logger `json:"-"`
}

// DeviceTokens holds the push notification tokens of the current device.
type DeviceTokens struct {
	IOS     string `json:"ios,omitempty"`
	Android string `json:"android,omitempty"`
}

// SocialTokens holds the OAuth token/secret pairs for social login.
type SocialTokens struct {
	GoogleToken    string
	GoogleSecret   string
	FacebookToken  string
	FacebookSecret string
}

// withDefaults returns a copy of c with unset optional fields filled in.
func (c Config) withDefaults() Config {
	if c.AppCode == "" {
		c.AppCode = DefaultAppCode
	}
	if c.TLSVerify == nil {
		tlsVerify := true
		c.TLSVerify = &tlsVerify
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}

// Validate checks if the configuration is valid. All problems are reported
// together.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.Validate(c.BaseURL,
		validation.Required.Error("url is required"),
		validation.By(httpURL),
	); err != nil {
		result = multierror.Append(result, fmt.Errorf("url: %w", err))
	}

	if err := validation.Validate(c.Timeout,
		validation.Min(time.Duration(0)).Error("must be non-negative"),
	); err != nil {
		result = multierror.Append(result, fmt.Errorf("timeout: %w", err))
	}

	if err := result.ErrorOrNil(); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

// httpURL is an ozzo rule accepting absolute http(s) URLs.
func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}

// NewHTTPClient creates the HTTP client used when Config.HTTPClient is nil.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
