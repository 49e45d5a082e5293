package baasbox

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Encoding selects how a request body is put on the wire.
type Encoding int

const (
	// EncodingJSON sends the body as application/json.
	EncodingJSON Encoding = iota
	// EncodingForm sends the body as application/x-www-form-urlencoded and
	// moves the app code from the header into the body.
	EncodingForm
)

func (e Encoding) String() string {
	if e == EncodingForm {
		return "form"
	}
	return "json"
}

// Body is a request body whose keys keep their insertion order, so form
// payloads are written in the order the fields were set.
type Body struct {
	m *orderedmap.OrderedMap[string, interface{}]
}

// NewBody returns an empty body.
func NewBody() *Body {
	return &Body{m: orderedmap.New[string, interface{}]()}
}

// BodyFromMap copies m into a new body. Go maps are unordered, so keys are
// added in sorted order.
func BodyFromMap(m map[string]interface{}) *Body {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := NewBody()
	for _, k := range keys {
		b.Set(k, m[k])
	}
	return b
}

// Set adds or replaces key. Replacing keeps the original position.
func (b *Body) Set(key string, value interface{}) *Body {
	b.m.Set(key, value)
	return b
}

// Get returns the value stored under key.
func (b *Body) Get(key string) (interface{}, bool) {
	if b == nil {
		return nil, false
	}
	return b.m.Get(key)
}

// Len returns the number of fields.
func (b *Body) Len() int {
	if b == nil {
		return 0
	}
	return b.m.Len()
}

// Keys returns the field names in insertion order.
func (b *Body) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, b.m.Len())
	for pair := b.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// clone returns a shallow copy so the dispatcher can add fields without
// touching the caller's body.
func (b *Body) clone() *Body {
	c := NewBody()
	if b == nil {
		return c
	}
	for pair := b.m.Oldest(); pair != nil; pair = pair.Next() {
		c.m.Set(pair.Key, pair.Value)
	}
	return c
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (b *Body) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return b.m.MarshalJSON()
}

// ParseBody decodes a JSON object into a body, keeping the key order of the
// source.
func ParseBody(data []byte) (*Body, error) {
	b := NewBody()
	if err := b.m.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to parse body: %w", err)
	}
	return b, nil
}

// FormEncode serializes the body as key=value pairs joined by "&", both sides
// percent-encoded like JavaScript's encodeURIComponent.
func (b *Body) FormEncode() (string, error) {
	if b == nil {
		return "", nil
	}
	parts := make([]string, 0, b.m.Len())
	for pair := b.m.Oldest(); pair != nil; pair = pair.Next() {
		v, err := formValue(pair.Value)
		if err != nil {
			return "", fmt.Errorf("failed to encode form field %q: %w", pair.Key, err)
		}
		parts = append(parts, encodeURIComponent(pair.Key)+"="+encodeURIComponent(v))
	}
	return strings.Join(parts, "&"), nil
}

// formValue renders one form value. Scalars use their natural text form,
// nested values are sent as JSON.
func formValue(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return fmt.Sprint(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// encodeURIComponent escapes everything except the RFC 3986 unreserved set
// and !*'(), matching the JavaScript function of the same name.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isComponentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// RequestSpec describes one call to the BaasBox API.
type RequestSpec struct {
	// Method is one of GET, PUT, POST, DELETE.
	Method string

	// Resource is the API route, e.g. "user" or "document/posts".
	Resource string

	// Argument is appended as a further path segment when non-empty. It is
	// not escaped, so it may itself contain "/" (e.g. "key/value").
	Argument string

	// Query is appended after "?" with every reserved character escaped.
	Query string

	// Params are appended as a well-formed query string. Endpoint helpers use
	// these; Query exists for callers that pass a pre-built string.
	Params url.Values

	// Body is the request payload. Ignored for GET and DELETE.
	Body *Body

	// Encoding selects JSON or form encoding of Body.
	Encoding Encoding
}

// buildURL joins the base URL with the resource, argument and query.
func (s RequestSpec) buildURL(baseURL string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteByte('/')
	b.WriteString(strings.TrimLeft(s.Resource, "/"))

	if s.Argument != "" {
		b.WriteByte('/')
		b.WriteString(s.Argument)
	}

	sep := byte('?')
	if s.Query != "" {
		b.WriteByte(sep)
		b.WriteString(encodeURIComponent(s.Query))
		sep = '&'
	}
	if len(s.Params) > 0 {
		b.WriteByte(sep)
		b.WriteString(s.Params.Encode())
	}

	return b.String()
}

// hasBody reports whether the method carries a payload.
func (s RequestSpec) hasBody() bool {
	switch s.method() {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return false
	}
	return true
}

// method returns the upper-cased method, GET when unset.
func (s RequestSpec) method() string {
	if s.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(s.Method)
}
