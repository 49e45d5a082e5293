package baasbox

import (
	"net/url"
	"strconv"
)

// Criteria are the pagination and query parameters accepted by the listing
// endpoints (users, documents, links).
type Criteria struct {
	Fields         string
	Where          string
	Params         []string
	GroupBy        string
	OrderBy        string
	Page           *int
	RecordsPerPage *int
	Skip           *int
}

// Values renders the criteria as query parameters. Unset fields are omitted.
func (c *Criteria) Values() url.Values {
	v := url.Values{}
	if c == nil {
		return v
	}

	if c.Fields != "" {
		v.Set("fields", c.Fields)
	}
	if c.Where != "" {
		v.Set("where", c.Where)
	}
	for _, p := range c.Params {
		v.Add("params", p)
	}
	if c.GroupBy != "" {
		v.Set("groupBy", c.GroupBy)
	}
	if c.OrderBy != "" {
		v.Set("orderBy", c.OrderBy)
	}
	if c.Page != nil {
		v.Set("page", strconv.Itoa(*c.Page))
	}
	if c.RecordsPerPage != nil {
		v.Set("recordsPerPage", strconv.Itoa(*c.RecordsPerPage))
	}
	if c.Skip != nil {
		v.Set("skip", strconv.Itoa(*c.Skip))
	}
	return v
}

// Paged returns criteria selecting one page.
func Paged(page, recordsPerPage int) *Criteria {
	return &Criteria{Page: &page, RecordsPerPage: &recordsPerPage}
}
