package baasbox

import (
	"fmt"
)

// Client talks to one BaasBox server. Several clients may coexist; each owns
// its own configuration and session.
//
// A Client is safe for concurrent use. The session token is read when a call
// is issued, so callers that need a logged-in session must wait for Login or
// Signup to return before issuing dependent calls.
type Client struct {
	state state
}

// New creates a client and initializes it with cfg.
func New(cfg Config) (*Client, error) {
	c := &Client{}
	if err := c.Init(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Init replaces the whole client configuration, including the session. On
// error the previous configuration is left untouched.
func (c *Client) Init(cfg Config) error {
	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		cfg.Logger.Error("rejected client configuration", "error", err)
		return err
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = cfg.NewHTTPClient()
	}
	cfg.Logger = cfg.Logger.Named("baasbox")

	c.state.replace(cfg)
	return nil
}

// Session returns the current X-BB-SESSION token, or "" when logged out.
func (c *Client) Session() string {
	return c.state.session()
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.state.snapshot().baseURL
}

// AppCode returns the configured application code.
func (c *Client) AppCode() string {
	return c.state.snapshot().appCode
}

// String implements fmt.Stringer without exposing the session token.
func (c *Client) String() string {
	snap := c.state.snapshot()
	return fmt.Sprintf("baasbox.Client{url=%s loggedIn=%t}", snap.baseURL, snap.session != "")
}
