package baasbox

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake server saw.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// fakeServer is a BaasBox stand-in that records requests and answers every
// one with the same status and body unless respond is set.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest

	status  int
	body    string
	respond func(r recordedRequest) (int, string)
}

func newFakeServer(t *testing.T, status int, body string) *fakeServer {
	t.Helper()

	fs := &fakeServer{status: status, body: body}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		rec := recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(b),
		}

		fs.mu.Lock()
		fs.requests = append(fs.requests, rec)
		status, body, respond := fs.status, fs.body, fs.respond
		fs.mu.Unlock()

		if respond != nil {
			status, body = respond(rec)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(fs.Close)

	return fs
}

// last returns the most recent request.
func (fs *fakeServer) last(t *testing.T) recordedRequest {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests, "server received no request")
	return fs.requests[len(fs.requests)-1]
}

func (fs *fakeServer) count() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

func (fs *fakeServer) reply(status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.status, fs.body = status, body
}

// newTestClient returns a client pointed at fs.
func newTestClient(t *testing.T, fs *fakeServer) *Client {
	t.Helper()
	c, err := New(Config{
		BaseURL: fs.URL,
		AppCode: "test-app",
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	return c
}
