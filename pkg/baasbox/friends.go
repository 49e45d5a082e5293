package baasbox

import (
	"context"
	"fmt"
)

// ===================================================================
// Friendship
// ===================================================================

// Follow makes the logged in user follow username.
func (c *Client) Follow(ctx context.Context, username string) (Value, error) {
	v, err := c.PostJSON(ctx, "follow/"+username, NewBody())
	if err != nil {
		return Value{}, fmt.Errorf("failed to follow user: %w", err)
	}
	return v, nil
}

// Unfollow stops following username.
func (c *Client) Unfollow(ctx context.Context, username string) (Value, error) {
	v, err := c.Delete(ctx, "follow", username)
	if err != nil {
		return Value{}, fmt.Errorf("failed to unfollow user: %w", err)
	}
	return v, nil
}

// Following lists the users username follows.
func (c *Client) Following(ctx context.Context, username string) (Value, error) {
	v, err := c.Get(ctx, "following", username, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to fetch following: %w", err)
	}
	return v, nil
}

// Followers lists the users following username.
func (c *Client) Followers(ctx context.Context, username string) (Value, error) {
	v, err := c.Get(ctx, "followers", username, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to fetch followers: %w", err)
	}
	return v, nil
}
