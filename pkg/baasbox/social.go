package baasbox

import (
	"context"
	"fmt"
)

// ===================================================================
// Social
// ===================================================================

// Network is a social network BaasBox can authenticate against.
type Network string

const (
	Google   Network = "google"
	Facebook Network = "facebook"
)

// OAuthCredentials are the token and secret obtained from a social network.
type OAuthCredentials struct {
	Token  string
	Secret string
}

// credentials returns creds, or the pair configured for network.
func (s snapshot) credentials(network Network, creds *OAuthCredentials) (OAuthCredentials, error) {
	if creds != nil {
		return *creds, nil
	}
	switch network {
	case Google:
		return OAuthCredentials{Token: s.socialTokens.GoogleToken, Secret: s.socialTokens.GoogleSecret}, nil
	case Facebook:
		return OAuthCredentials{Token: s.socialTokens.FacebookToken, Secret: s.socialTokens.FacebookSecret}, nil
	}
	return OAuthCredentials{}, fmt.Errorf("unsupported social network %q", network)
}

func oauthBody(creds OAuthCredentials) *Body {
	return NewBody().
		Set("oauth_token", creds.Token).
		Set("oauth_secret", creds.Secret)
}

// SocialConnections lists the social networks linked to the logged in user.
// The server answers 404 when there are none.
func (c *Client) SocialConnections(ctx context.Context) (Value, error) {
	v, err := c.Get(ctx, "social", "", "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get social connections: %w", err)
	}
	return v, nil
}

// LoginWith signs in through network using creds, or the configured tokens
// when creds is nil. The result carries an X-BB-SESSION; the client does not
// adopt it, pass it to Init to use it.
func (c *Client) LoginWith(ctx context.Context, network Network, creds *OAuthCredentials) (Value, error) {
	pair, err := c.state.snapshot().credentials(network, creds)
	if err != nil {
		return Value{}, err
	}

	v, err := c.PostForm(ctx, "social/"+string(network), oauthBody(pair))
	if err != nil {
		return Value{}, fmt.Errorf("failed to log in with %s: %w", network, err)
	}
	return v, nil
}

// LinkTo links the logged in user to network.
func (c *Client) LinkTo(ctx context.Context, network Network, creds *OAuthCredentials) (Value, error) {
	pair, err := c.state.snapshot().credentials(network, creds)
	if err != nil {
		return Value{}, err
	}

	v, err := c.PutForm(ctx, "social", oauthBody(pair), string(network))
	if err != nil {
		return Value{}, fmt.Errorf("failed to link %s: %w", network, err)
	}
	return v, nil
}

// UnlinkFrom removes the link between the logged in user and network. The
// server refuses if that network is the user's only way to log in.
func (c *Client) UnlinkFrom(ctx context.Context, network Network) (Value, error) {
	v, err := c.Delete(ctx, "social/"+string(network), "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to unlink %s: %w", network, err)
	}
	return v, nil
}
