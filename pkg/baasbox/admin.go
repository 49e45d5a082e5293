package baasbox

import (
	"context"
	"fmt"
)

// ===================================================================
// Administration
// ===================================================================
// These endpoints require an administrator session.

// Section is a group of server settings.
type Section string

const (
	SectionPasswordRecovery Section = "PasswordRecovery"
	SectionApplication      Section = "Application"
	SectionPush             Section = "Push"
	SectionImages           Section = "Images"
)

// Sections lists every configurable section.
var Sections = []Section{
	SectionPasswordRecovery,
	SectionApplication,
	SectionPush,
	SectionImages,
}

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown configuration section %q", name)
}

// AdminSettings dumps the whole server configuration.
func (c *Client) AdminSettings(ctx context.Context) (Value, error) {
	v, err := c.Get(ctx, "admin/configuration", "dump.json", "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return v, nil
}

// AdminSection returns one section of the server configuration.
func (c *Client) AdminSection(ctx context.Context, section Section) (Value, error) {
	v, err := c.Get(ctx, "admin/configuration", string(section), "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get %s settings: %w", section, err)
	}
	return v, nil
}

// AdminUpdateSetting sets key to value in section.
func (c *Client) AdminUpdateSetting(ctx context.Context, section Section, key, value string) (Value, error) {
	v, err := c.Put(ctx, "admin/configuration/"+string(section), nil, key+"/"+value)
	if err != nil {
		return Value{}, fmt.Errorf("failed to update %s setting %q: %w", section, key, err)
	}
	return v, nil
}

// AdminEndpoints lists every endpoint group and whether it is enabled.
func (c *Client) AdminEndpoints(ctx context.Context) (Value, error) {
	v, err := c.Get(ctx, "admin/endpoints", "", "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to list endpoint groups: %w", err)
	}
	return v, nil
}

// AdminEndpoint describes one endpoint group.
func (c *Client) AdminEndpoint(ctx context.Context, group string) (Value, error) {
	v, err := c.Get(ctx, "admin/endpoints", group, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get endpoint group: %w", err)
	}
	return v, nil
}

// AdminEnableEndpoint enables an endpoint group.
func (c *Client) AdminEnableEndpoint(ctx context.Context, group string) (Value, error) {
	v, err := c.Put(ctx, "admin/endpoints/"+group+"/enabled", nil, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to enable endpoint group: %w", err)
	}
	return v, nil
}

// AdminDisableEndpoint disables an endpoint group. Calls to its endpoints
// then fail with 403.
func (c *Client) AdminDisableEndpoint(ctx context.Context, group string) (Value, error) {
	v, err := c.Delete(ctx, "admin/endpoints/"+group+"/enabled", "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to disable endpoint group: %w", err)
	}
	return v, nil
}
