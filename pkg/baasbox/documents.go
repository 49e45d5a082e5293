package baasbox

import (
	"context"
	"fmt"
	"net/http"
)

// ===================================================================
// Documents
// ===================================================================
// All methods work on /document/{collection}.

// Grant actions for document permissions.
const (
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAll    = "all"
)

// Built-in roles.
const (
	RoleAnonymous     = "anonymous"
	RoleRegistered    = "registered"
	RoleAdministrator = "administrator"
)

func documentPath(collection string) string {
	return "document/" + collection
}

// CreateDocument stores data as a new document of collection and returns the
// saved document.
func (c *Client) CreateDocument(ctx context.Context, collection string, data *Body) (Value, error) {
	v, err := c.PostJSON(ctx, documentPath(collection), data)
	if err != nil {
		return Value{}, fmt.Errorf("failed to create document: %w", err)
	}
	return v, nil
}

// GetDocument returns the document id of collection.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (Value, error) {
	v, err := c.Get(ctx, documentPath(collection), id, "")
	if err != nil {
		return Value{}, fmt.Errorf("failed to get document: %w", err)
	}
	return v, nil
}

// QueryDocuments returns the documents of collection matching criteria.
func (c *Client) QueryDocuments(ctx context.Context, collection string, criteria *Criteria) (Value, error) {
	v, err := c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Resource: documentPath(collection),
		Params:   criteria.Values(),
	})
	if err != nil {
		return Value{}, fmt.Errorf("failed to query documents: %w", err)
	}
	return v, nil
}

// CountDocuments returns the number of documents of collection the user can
// read, optionally restricted by criteria.
func (c *Client) CountDocuments(ctx context.Context, collection string, criteria *Criteria) (int64, error) {
	v, err := c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Resource: documentPath(collection),
		Argument: "count",
		Params:   criteria.Values(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	count, ok := v.Get("count").AsInt64()
	if !ok {
		return 0, fmt.Errorf("failed to count documents: unexpected payload %s", v)
	}
	return count, nil
}

// UpdateDocument replaces document id of collection with data.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, data *Body) (Value, error) {
	v, err := c.Put(ctx, documentPath(collection), data, id)
	if err != nil {
		return Value{}, fmt.Errorf("failed to update document: %w", err)
	}
	return v, nil
}

// UpdateDocumentField sets a single field of document id. The value may be a
// scalar, an object or an array.
func (c *Client) UpdateDocumentField(ctx context.Context, collection, id, field string, value interface{}) (Value, error) {
	body := NewBody().Set("data", value)

	v, err := c.Put(ctx, documentPath(collection), body, id+"/."+field)
	if err != nil {
		return Value{}, fmt.Errorf("failed to update document field: %w", err)
	}
	return v, nil
}

// DeleteDocument deletes document id of collection.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) (Value, error) {
	v, err := c.Delete(ctx, documentPath(collection), id)
	if err != nil {
		return Value{}, fmt.Errorf("failed to delete document: %w", err)
	}
	return v, nil
}

func grantPath(collection, id, action, kind string) string {
	return fmt.Sprintf("%s/%s/%s/%s", documentPath(collection), id, action, kind)
}

// GrantToUser grants action on document id to username.
func (c *Client) GrantToUser(ctx context.Context, collection, id, action, username string) (Value, error) {
	v, err := c.Put(ctx, grantPath(collection, id, action, "user"), nil, username)
	if err != nil {
		return Value{}, fmt.Errorf("failed to grant permission to user: %w", err)
	}
	return v, nil
}

// GrantToRole grants action on document id to every member of role.
func (c *Client) GrantToRole(ctx context.Context, collection, id, action, role string) (Value, error) {
	v, err := c.Put(ctx, grantPath(collection, id, action, "role"), nil, role)
	if err != nil {
		return Value{}, fmt.Errorf("failed to grant permission to role: %w", err)
	}
	return v, nil
}

// RevokeFromUser revokes action on document id from username.
func (c *Client) RevokeFromUser(ctx context.Context, collection, id, action, username string) (Value, error) {
	v, err := c.Delete(ctx, grantPath(collection, id, action, "user"), username)
	if err != nil {
		return Value{}, fmt.Errorf("failed to revoke permission from user: %w", err)
	}
	return v, nil
}

// RevokeFromRole revokes action on document id from role.
func (c *Client) RevokeFromRole(ctx context.Context, collection, id, action, role string) (Value, error) {
	v, err := c.Delete(ctx, grantPath(collection, id, action, "role"), role)
	if err != nil {
		return Value{}, fmt.Errorf("failed to revoke permission from role: %w", err)
	}
	return v, nil
}
