package baasbox

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_JSONCallHeaders(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"result":"ok","data":{"name":"x"}}`)
	c := newTestClient(t, fs)

	_, err := c.PostJSON(context.Background(), "document/posts", NewBody().Set("title", "hi"))
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/document/posts", req.Path)
	assert.Equal(t, "test-app", req.Header.Get(HeaderAppCode))
	assert.Equal(t, "", req.Header.Get(HeaderSession))
	assert.Contains(t, req.Header, http.CanonicalHeaderKey(HeaderSession))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.JSONEq(t, `{"title":"hi"}`, req.Body)
}

func TestClient_FormCallCarriesAppCodeInBody(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":{}}`)
	c := newTestClient(t, fs)

	_, err := c.PostForm(context.Background(), "social/google", NewBody().Set("oauth_token", "a b"))
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get(HeaderAppCode))
	assert.Equal(t, "oauth_token=a%20b&appcode=test-app", req.Body)
}

func TestClient_UnwrapsDataEnvelope(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"result":"ok","data":{"id":"42","n":7}}`)
	c := newTestClient(t, fs)

	v, err := c.Get(context.Background(), "document/posts", "42", "")
	require.NoError(t, err)

	id, ok := v.Get("id").AsString()
	require.True(t, ok)
	assert.Equal(t, "42", id)

	n, ok := v.Get("n").AsInt64()
	require.True(t, ok)
	assert.EqualValues(t, 7, n)
	assert.Equal(t, "/document/posts/42", fs.last(t).Path)
}

func TestClient_MissingEnvelopeIsNull(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"result":"ok"}`)
	c := newTestClient(t, fs)

	v, err := c.Get(context.Background(), "me", "", "")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestClient_ServerError(t *testing.T) {
	body := `{"result":"error","message":"Authentication info not valid or not provided","http_code":401}`
	fs := newFakeServer(t, http.StatusUnauthorized, body)
	c := newTestClient(t, fs)

	_, err := c.Get(context.Background(), "me", "", "")
	require.Error(t, err)

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusUnauthorized, serverErr.StatusCode)
	assert.Equal(t, body, string(serverErr.Raw))
	assert.Equal(t, "error", mustString(t, serverErr.Body.Get("result")))
	assert.Contains(t, err.Error(), "Authentication info not valid")

	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, 0, StatusCode(errors.New("other")))
}

func TestClient_ServerErrorWithoutJSONBody(t *testing.T) {
	fs := newFakeServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	c := newTestClient(t, fs)

	_, err := c.Get(context.Background(), "me", "", "")

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.True(t, serverErr.Body.IsNull())
	assert.Equal(t, "<html>bad gateway</html>", string(serverErr.Raw))
}

func TestClient_TransportError(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, fs)
	fs.Close()

	_, err := c.Get(context.Background(), "me", "", "")
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.MethodGet, transportErr.Method)
	assert.Equal(t, fs.URL+"/me", transportErr.URL)
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_InvalidJSONOnSuccess(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `not json`)
	c := newTestClient(t, fs)

	_, err := c.Get(context.Background(), "me", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_Delete(t *testing.T) {
	t.Run("Resolves to the ack", func(t *testing.T) {
		fs := newFakeServer(t, http.StatusOK, `{"result":"ok","data":"ok"}`)
		c := newTestClient(t, fs)

		v, err := c.Delete(context.Background(), "document/posts", "abc")
		require.NoError(t, err)

		s, ok := v.AsString()
		require.True(t, ok)
		assert.Equal(t, DeletedAck, s)

		req := fs.last(t)
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/document/posts/abc", req.Path)
		assert.Empty(t, req.Body)
	})

	t.Run("Empty id targets the collection", func(t *testing.T) {
		fs := newFakeServer(t, http.StatusOK, ``)
		c := newTestClient(t, fs)

		v, err := c.Delete(context.Background(), "document/posts", "")
		require.NoError(t, err)
		assert.Equal(t, `"Deleted."`, v.String())
		assert.Equal(t, "/document/posts", fs.last(t).Path)
	})

	t.Run("Failure is not an ack", func(t *testing.T) {
		fs := newFakeServer(t, http.StatusNotFound, `{"result":"error"}`)
		c := newTestClient(t, fs)

		_, err := c.Delete(context.Background(), "document/posts", "missing")
		assert.True(t, IsStatus(err, http.StatusNotFound))
	})
}

func TestClient_GetIsRepeatable(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":{"v":1}}`)
	c := newTestClient(t, fs)

	first, err := c.Get(context.Background(), "users", "", "page=0")
	require.NoError(t, err)
	second, err := c.Get(context.Background(), "users", "", "page=0")
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 2, fs.count())
	assert.Equal(t, "page%3D0", fs.last(t).RawQuery)
}

func TestClient_PutNilBodySendsEmptyObject(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":{}}`)
	c := newTestClient(t, fs)

	_, err := c.Put(context.Background(), "me/suspend", nil, "")
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "{}", req.Body)
}

func TestClient_PutForm(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":{}}`)
	c := newTestClient(t, fs)

	_, err := c.PutForm(context.Background(), "social", NewBody().Set("oauth_token", "t"), "facebook")
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/social/facebook", req.Path)
	assert.Equal(t, "oauth_token=t&appcode=test-app", req.Body)
}

func TestClient_Params(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":[]}`)
	c := newTestClient(t, fs)

	_, err := c.Do(context.Background(), RequestSpec{
		Resource: "users",
		Params:   url.Values{"page": {"0"}, "recordsPerPage": {"5"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "page=0&recordsPerPage=5", fs.last(t).RawQuery)
	assert.Equal(t, http.MethodGet, fs.last(t).Method)
}

func TestClient_Dispatch(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":{"ok":true}}`)
	c := newTestClient(t, fs)

	f := c.Dispatch(context.Background(), RequestSpec{Resource: "me"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, err := f.Wait(ctx)
	require.NoError(t, err)

	ok, isBool := v.Get("ok").AsBool()
	require.True(t, isBool)
	assert.True(t, ok)

	select {
	case <-f.Done():
	default:
		t.Fatal("future not done after Wait returned")
	}
}

func TestClient_DispatchCapturesSessionAtIssue(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"data":{}}`)
	c, err := New(Config{
		BaseURL: fs.URL,
		Session: "first",
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	future := c.Dispatch(context.Background(), RequestSpec{Resource: "me"})
	c.state.recordSession(c.state.snapshot().epoch, "second")

	_, err = future.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", fs.last(t).Header.Get(HeaderSession))
	assert.Equal(t, "second", c.Session())
}

func TestFuture_WaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	f := Async(context.Background(), func(ctx context.Context) (Value, error) {
		<-block
		return Value{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Custom(t *testing.T) {
	fs := newFakeServer(t, http.StatusCreated, `{"result":"ok","data":{"id":"1"}}`)
	c := newTestClient(t, fs)

	resp, err := c.Custom(context.Background(), CustomCall{
		Method:  http.MethodPut,
		Path:    "admin/user",
		Headers: http.Header{"X-Extra": {"yes"}, HeaderAppCode: {"spoofed"}},
		Body:    NewBody().Set("role", "admin"),
		Session: "caller-token",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ok", mustString(t, resp.Body.Get("result")))
	assert.Equal(t, `{"result":"ok","data":{"id":"1"}}`, string(resp.Raw))

	req := fs.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/admin/user", req.Path)
	assert.Equal(t, "yes", req.Header.Get("X-Extra"))
	assert.Equal(t, "test-app", req.Header.Get(HeaderAppCode))
	assert.Equal(t, "caller-token", req.Header.Get(HeaderSession))
	assert.JSONEq(t, `{"role":"admin"}`, req.Body)
}

func TestClient_CustomPrefersStoredSession(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	c, err := New(Config{BaseURL: fs.URL, Session: "stored", Logger: hclog.NewNullLogger()})
	require.NoError(t, err)

	_, err = c.Custom(context.Background(), CustomCall{Method: http.MethodGet, Path: "me", Session: "other"})
	require.NoError(t, err)
	assert.Equal(t, "stored", fs.last(t).Header.Get(HeaderSession))
}

func TestClient_ZeroValueIsNotInitialized(t *testing.T) {
	var c Client

	_, err := c.Get(context.Background(), "me", "", "")
	require.Error(t, err)

	var configErr *ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func mustString(t *testing.T, v Value) string {
	t.Helper()
	s, ok := v.AsString()
	require.True(t, ok, "value %s is not a string", v)
	return s
}
