package baasbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// HeaderAppCode carries the application code on JSON calls.
	HeaderAppCode = "X-BAASBOX-APPCODE"

	// HeaderSession carries the session token, empty when logged out.
	HeaderSession = "X-BB-SESSION"

	// DeletedAck is what every successful delete resolves to. BaasBox
	// delete responses carry nothing worth returning.
	DeletedAck = "Deleted."

	formAppCodeField = "appcode"
	envelopeField    = "data"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

var errNotInitialized = errors.New("client is not initialized")

// Response is a complete server reply, returned by Custom.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the decoded response body, envelope included. It is null when
	// the body was empty or not JSON; Raw always holds the bytes.
	Body Value
	Raw  []byte

	decodeErr error
}

// Do issues spec and returns the payload found under the response's "data"
// field. Non-2xx replies return a *ServerError, network failures a
// *TransportError. Do never retries.
func (c *Client) Do(ctx context.Context, spec RequestSpec) (Value, error) {
	return c.do(ctx, c.state.snapshot(), spec)
}

// Dispatch issues spec in the background and returns immediately. The session
// token is captured now, not when the request goes out.
func (c *Client) Dispatch(ctx context.Context, spec RequestSpec) *Future {
	snap := c.state.snapshot()
	return Async(ctx, func(ctx context.Context) (Value, error) {
		return c.do(ctx, snap, spec)
	})
}

// Get fetches resource, or resource/arg when arg is set. query, when set, is
// percent-encoded as a whole and appended after "?".
func (c *Client) Get(ctx context.Context, resource, arg, query string) (Value, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodGet,
		Resource: resource,
		Argument: arg,
		Query:    query,
	})
}

// Put sends body as JSON to resource, or resource/arg when arg is set. A nil
// body is sent as {}.
func (c *Client) Put(ctx context.Context, resource string, body *Body, arg string) (Value, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPut,
		Resource: resource,
		Argument: arg,
		Body:     body,
	})
}

// PutForm is Put with a form-encoded body.
func (c *Client) PutForm(ctx context.Context, resource string, body *Body, arg string) (Value, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPut,
		Resource: resource,
		Argument: arg,
		Body:     body,
		Encoding: EncodingForm,
	})
}

// PostJSON sends body as JSON to resource.
func (c *Client) PostJSON(ctx context.Context, resource string, body *Body) (Value, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPost,
		Resource: resource,
		Body:     body,
	})
}

// PostForm sends body form-encoded to resource. The app code is added to the
// body as "appcode" instead of being sent as a header.
func (c *Client) PostForm(ctx context.Context, resource string, body *Body) (Value, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodPost,
		Resource: resource,
		Body:     body,
		Encoding: EncodingForm,
	})
}

// Delete removes resource/id, or the collection-level resource when id is
// empty. On success the result is always DeletedAck.
func (c *Client) Delete(ctx context.Context, resource, id string) (Value, error) {
	return c.Do(ctx, RequestSpec{
		Method:   http.MethodDelete,
		Resource: resource,
		Argument: id,
	})
}

// CustomCall is a request to an endpoint the client has no helper for.
type CustomCall struct {
	// Method is the HTTP method, e.g. "PUT".
	Method string

	// Path is the API route without the base URL, e.g. "admin/user".
	Path string

	// Headers are sent along; they cannot replace the app code or session
	// headers.
	Headers http.Header

	// Body is sent with Encoding. A nil body is sent as {}.
	Body     *Body
	Encoding Encoding

	// Session is used only when the client holds no session of its own.
	Session string
}

// Custom issues call and returns the whole response rather than only the
// data field.
func (c *Client) Custom(ctx context.Context, call CustomCall) (*Response, error) {
	snap := c.state.snapshot()
	if snap.session == "" {
		snap.session = call.Session
	}

	return c.roundTrip(ctx, snap, RequestSpec{
		Method:   call.Method,
		Resource: call.Path,
		Body:     call.Body,
		Encoding: call.Encoding,
	}, call.Headers)
}

// do runs one call against the state captured in snap and unwraps the data
// envelope.
func (c *Client) do(ctx context.Context, snap snapshot, spec RequestSpec) (Value, error) {
	resp, err := c.roundTrip(ctx, snap, spec, nil)
	if err != nil {
		return Value{}, err
	}

	if spec.method() == http.MethodDelete {
		return NewValue(DeletedAck), nil
	}

	if resp.decodeErr != nil {
		return Value{}, fmt.Errorf("failed to decode response: %w", resp.decodeErr)
	}

	return resp.Body.Get(envelopeField), nil
}

// roundTrip builds the HTTP request for spec, sends it and classifies the
// reply.
func (c *Client) roundTrip(ctx context.Context, snap snapshot, spec RequestSpec, extra http.Header) (*Response, error) {
	if snap.httpClient == nil {
		return nil, &ConfigError{Err: errNotInitialized}
	}

	method := spec.method()
	endpoint := spec.buildURL(snap.baseURL)
	logger := snap.logger.With(
		"method", method,
		"url", endpoint,
		"request_id", uuid.NewString(),
	)

	bodyReader, contentType, err := encodeBody(spec, snap.appCode)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(HeaderSession, snap.session)
	if spec.Encoding == EncodingForm {
		// The app code travels in the form body.
		req.Header.Del(HeaderAppCode)
	} else {
		req.Header.Set(HeaderAppCode, snap.appCode)
	}

	start := time.Now()
	logger.Debug("sending request", "encoding", spec.Encoding.String(), "authenticated", snap.session != "")

	httpResp, err := snap.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		logger.Error("failed to read response", "error", err)
		return nil, &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Raw:        raw,
	}
	resp.Body, resp.decodeErr = ParseValue(raw)

	logger.Debug("received response",
		"status", httpResp.StatusCode,
		"duration", time.Since(start),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		logger.Error("server returned error status", "status", httpResp.StatusCode, "body", string(raw))
		return nil, &ServerError{
			Method:     method,
			URL:        endpoint,
			StatusCode: httpResp.StatusCode,
			Body:       resp.Body,
			Raw:        raw,
		}
	}

	return resp, nil
}

// encodeBody renders spec's body and returns the matching content type.
func encodeBody(spec RequestSpec, appCode string) (io.Reader, string, error) {
	if !spec.hasBody() {
		return nil, "", nil
	}

	if spec.Encoding == EncodingForm {
		form, err := spec.Body.clone().Set(formAppCodeField, appCode).FormEncode()
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader([]byte(form)), contentTypeForm, nil
	}

	if spec.Body == nil {
		return bytes.NewReader([]byte("{}")), contentTypeJSON, nil
	}
	b, err := json.Marshal(spec.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), contentTypeJSON, nil
}
