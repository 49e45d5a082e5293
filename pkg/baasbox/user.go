package baasbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
)

// ===================================================================
// Users
// ===================================================================
// Signup, Login and Logout are the only operations that change the
// session held by the client.

// Visibility sections of a user profile.
const (
	VisibleByTheUser         = "visibleByTheUser"
	VisibleByFriends         = "visibleByFriends"
	VisibleByRegisteredUsers = "visibleByRegisteredUsers"
	VisibleByAnonymousUsers  = "visibleByAnonymousUsers"
)

// Profile holds the four visibility sections of a user. A nil section is left
// out of updates.
type Profile struct {
	VisibleByTheUser         map[string]interface{} `json:"visibleByTheUser,omitempty"`
	VisibleByFriends         map[string]interface{} `json:"visibleByFriends,omitempty"`
	VisibleByRegisteredUsers map[string]interface{} `json:"visibleByRegisteredUsers,omitempty"`
	VisibleByAnonymousUsers  map[string]interface{} `json:"visibleByAnonymousUsers,omitempty"`
}

// NewUser is the payload of Signup.
type NewUser struct {
	Username string
	Password string
	Profile
}

// User is the decoded form of the user payloads returned by Signup, Login,
// Me and GetUser.
type User struct {
	ID      string `json:"id"`
	Account struct {
		Name   string `json:"name"`
		Status string `json:"status"`
		Roles  []struct {
			Name string `json:"name"`
		} `json:"roles"`
	} `json:"user"`
	Profile    `json:",squash"`
	SignUpDate string `json:"signUpDate"`
	Session    string `json:"X-BB-SESSION"`
}

// SignUpTime parses SignUpDate, which BaasBox sends in a server-local
// timestamp format.
func (u *User) SignUpTime() (time.Time, error) {
	if u.SignUpDate == "" {
		return time.Time{}, fmt.Errorf("user has no sign up date")
	}
	t, err := dateparse.ParseAny(u.SignUpDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sign up date: %w", err)
	}
	return t, nil
}

// DecodeUser decodes a user payload.
func DecodeUser(v Value) (*User, error) {
	var u User
	if err := v.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func section(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

// Signup registers a new user and keeps the returned session. Visibility
// sections that are nil are sent as empty objects. The returned value is the
// whole data object (user, signUpDate, X-BB-SESSION).
func (c *Client) Signup(ctx context.Context, user NewUser) (Value, error) {
	snap := c.state.snapshot()

	body := NewBody().
		Set("username", user.Username).
		Set("password", user.Password).
		Set(VisibleByTheUser, section(user.VisibleByTheUser)).
		Set(VisibleByFriends, section(user.VisibleByFriends)).
		Set(VisibleByRegisteredUsers, section(user.VisibleByRegisteredUsers)).
		Set(VisibleByAnonymousUsers, section(user.VisibleByAnonymousUsers))

	data, err := c.do(ctx, snap, RequestSpec{
		Method:   http.MethodPost,
		Resource: "user",
		Body:     body,
	})
	if err != nil {
		return Value{}, fmt.Errorf("failed to sign up: %w", err)
	}

	c.storeSession(snap, data)
	return data, nil
}

// Login authenticates username and keeps the returned session.
func (c *Client) Login(ctx context.Context, username, password string) (Value, error) {
	snap := c.state.snapshot()

	body := NewBody().
		Set("username", username).
		Set("password", password).
		Set(formAppCodeField, snap.appCode)

	data, err := c.do(ctx, snap, RequestSpec{
		Method:   http.MethodPost,
		Resource: "login",
		Body:     body,
		Encoding: EncodingForm,
	})
	if err != nil {
		return Value{}, fmt.Errorf("failed to log in: %w", err)
	}

	c.storeSession(snap, data)
	return data, nil
}

// Logout ends the current session on the server and forgets it locally.
func (c *Client) Logout(ctx context.Context) (Value, error) {
	snap := c.state.snapshot()

	if _, err := c.do(ctx, snap, RequestSpec{
		Method:   http.MethodPost,
		Resource: "logout",
	}); err != nil {
		return Value{}, fmt.Errorf("failed to log out: %w", err)
	}

	if !c.state.clearSession(snap.epoch, snap.session) {
		snap.logger.Warn("session changed during logout, keeping the newer session")
	}
	return NewValue("ok"), nil
}

// storeSession records the X-BB-SESSION field of a login or signup payload.
func (c *Client) storeSession(snap snapshot, data Value) {
	token, ok := data.Get(HeaderSession).AsString()
	if !ok {
		snap.logger.Warn("response carried no session token")
	}
	if !c.state.recordSession(snap.epoch, token) {
		snap.logger.Warn("client re-initialized during login, discarding session")
	}
}

// Me returns the logged in user.
func (c *Client) Me(ctx context.Context) (Value, error) {
	v, err := c.Get(ctx, "me", "", "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return v, nil
}

// UpdateProfile replaces the supplied visibility sections of the logged in
// user.
func (c *Client) UpdateProfile(ctx context.Context, profile Profile) (Value, error) {
	body := NewBody()
	if profile.VisibleByTheUser != nil {
		body.Set(VisibleByTheUser, profile.VisibleByTheUser)
	}
	if profile.VisibleByFriends != nil {
		body.Set(VisibleByFriends, profile.VisibleByFriends)
	}
	if profile.VisibleByRegisteredUsers != nil {
		body.Set(VisibleByRegisteredUsers, profile.VisibleByRegisteredUsers)
	}
	if profile.VisibleByAnonymousUsers != nil {
		body.Set(VisibleByAnonymousUsers, profile.VisibleByAnonymousUsers)
	}

	v, err := c.Put(ctx, "me", body, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return v, nil
}

// GetUser returns the public profile of username.
func (c *Client) GetUser(ctx context.Context, username string) (Value, error) {
	v, err := c.Get(ctx, "user", username, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get user: %w", err)
	}
	return v, nil
}

// ListUsers returns the users matching criteria.
func (c *Client) ListUsers(ctx context.Context, criteria *Criteria) (Value, error) {
	v, err := c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Resource: "users",
		Params:   criteria.Values(),
	})
	if err != nil {
		return Value{}, fmt.Errorf("failed to list users: %w", err)
	}
	return v, nil
}

// ChangePassword changes the password of the logged in user. The server
// invalidates the current session; log in again afterwards.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (Value, error) {
	body := NewBody().
		Set("old", oldPassword).
		Set("new", newPassword)

	v, err := c.Put(ctx, "me/password", body, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to change password: %w", err)
	}
	return v, nil
}

// ResetPassword asks the server to email a password reset link to username.
func (c *Client) ResetPassword(ctx context.Context, username string) (Value, error) {
	v, err := c.Get(ctx, "user", username+"/password/reset", "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to request password reset: %w", err)
	}
	return v, nil
}

// ChangeUsername renames the logged in user.
func (c *Client) ChangeUsername(ctx context.Context, username string) (Value, error) {
	body := NewBody().Set("username", username)

	v, err := c.Put(ctx, "me/username", body, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to change username: %w", err)
	}
	return v, nil
}

// SuspendCurrentUser suspends the logged in user.
func (c *Client) SuspendCurrentUser(ctx context.Context) (Value, error) {
	v, err := c.Put(ctx, "me/suspend", nil, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to suspend current user: %w", err)
	}
	return v, nil
}

// SuspendUser suspends username. Requires an administrator session.
func (c *Client) SuspendUser(ctx context.Context, username string) (Value, error) {
	v, err := c.Put(ctx, "admin/user/suspend", nil, username)
	if err != nil {
		return Value{}, fmt.Errorf("failed to suspend user: %w", err)
	}
	return v, nil
}

// ActivateUser reactivates a suspended user. Requires an administrator
// session.
func (c *Client) ActivateUser(ctx context.Context, username string) (Value, error) {
	v, err := c.Put(ctx, "admin/user/activate", nil, username)
	if err != nil {
		return Value{}, fmt.Errorf("failed to activate user: %w", err)
	}
	return v, nil
}
