package baasbox

import (
	"context"
	"fmt"
	"net/http"
)

// ===================================================================
// Links
// ===================================================================
// Links connect two documents or files. They have a direction: source is the
// "out" node, destination the "in" node.

// CreateLink links sourceID to destinationID under label.
func (c *Client) CreateLink(ctx context.Context, sourceID, label, destinationID string) (Value, error) {
	path := fmt.Sprintf("link/%s/%s/%s", sourceID, label, destinationID)

	v, err := c.PostJSON(ctx, path, NewBody())
	if err != nil {
		return Value{}, fmt.Errorf("failed to create link: %w", err)
	}
	return v, nil
}

// GetLink returns link id.
func (c *Client) GetLink(ctx context.Context, id string) (Value, error) {
	v, err := c.Get(ctx, "link", id, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get link: %w", err)
	}
	return v, nil
}

// QueryLinks returns the links matching criteria, e.g.
// Where: "in.name.toLowerCase() like 'john%' and label=\"customer\"".
func (c *Client) QueryLinks(ctx context.Context, criteria *Criteria) (Value, error) {
	v, err := c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Resource: "link",
		Params:   criteria.Values(),
	})
	if err != nil {
		return Value{}, fmt.Errorf("failed to query links: %w", err)
	}
	return v, nil
}

// DeleteLink deletes link id.
func (c *Client) DeleteLink(ctx context.Context, id string) (Value, error) {
	v, err := c.Delete(ctx, "link", id)
	if err != nil {
		return Value{}, fmt.Errorf("failed to delete link: %w", err)
	}
	return v, nil
}
