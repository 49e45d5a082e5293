package baasbox

import (
	"context"
	"fmt"
)

// ===================================================================
// Push notifications
// ===================================================================

// Platform is a push notification platform.
type Platform string

const (
	IOS     Platform = "ios"
	Android Platform = "android"
)

func (s snapshot) pushToken(platform Platform) (string, error) {
	var token string
	switch platform {
	case IOS:
		token = s.deviceTokens.IOS
	case Android:
		token = s.deviceTokens.Android
	default:
		return "", fmt.Errorf("unsupported push platform %q", platform)
	}
	if token == "" {
		return "", fmt.Errorf("no %s push token configured", platform)
	}
	return token, nil
}

// EnablePush registers the configured device token of platform for the
// logged in user.
func (c *Client) EnablePush(ctx context.Context, platform Platform) (Value, error) {
	token, err := c.state.snapshot().pushToken(platform)
	if err != nil {
		return Value{}, err
	}

	v, err := c.Put(ctx, "push/enable/"+string(platform), nil, token)
	if err != nil {
		return Value{}, fmt.Errorf("failed to enable push: %w", err)
	}
	return v, nil
}

// DisablePush stops delivering notifications to the configured device token
// of platform.
func (c *Client) DisablePush(ctx context.Context, platform Platform) (Value, error) {
	token, err := c.state.snapshot().pushToken(platform)
	if err != nil {
		return Value{}, err
	}

	v, err := c.Put(ctx, "push/disable", nil, token)
	if err != nil {
		return Value{}, fmt.Errorf("failed to disable push: %w", err)
	}
	return v, nil
}

// PushMessage is the payload of SendPush. Only Message and Users are
// required; see the BaasBox push documentation for the rest.
type PushMessage struct {
	Message  string
	Users    []string
	Profiles []int
	Sound    string
	Badge    *int
	Custom   map[string]interface{}
}

func (m PushMessage) body() *Body {
	b := NewBody().
		Set("message", m.Message).
		Set("users", m.Users)
	if len(m.Profiles) > 0 {
		b.Set("profiles", m.Profiles)
	}
	if m.Sound != "" {
		b.Set("sound", m.Sound)
	}
	if m.Badge != nil {
		b.Set("badge", *m.Badge)
	}
	if m.Custom != nil {
		b.Set("custom", m.Custom)
	}
	return b
}

// SendPush sends msg to every registered device of the listed users.
func (c *Client) SendPush(ctx context.Context, msg PushMessage) (Value, error) {
	v, err := c.PostJSON(ctx, "push/message", msg.body())
	if err != nil {
		return Value{}, fmt.Errorf("failed to send push notification: %w", err)
	}
	return v, nil
}
