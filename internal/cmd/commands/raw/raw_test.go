package raw

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/baasbox/internal/cmd/base"
	"github.com/hashicorp-forge/baasbox/internal/config"
)

func setup(t *testing.T, status int, body string) (*httptest.Server, *http.Request, *string, *base.Command, *cli.MockUi) {
	t.Helper()

	got := &http.Request{}
	gotBody := new(string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		*got = *r.Clone(r.Context())
		*gotBody = string(b)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	ui := cli.NewMockUi()
	return srv, got, gotBody, base.NewCommand(hclog.NewNullLogger(), ui), ui
}

func isolated() *config.Loader {
	return config.NewLoader().WithEnv(func(string) string { return "" })
}

func TestGetCommand(t *testing.T) {
	srv, got, _, b, ui := setup(t, http.StatusOK, `{"data":[{"user":{"name":"a"}}]}`)

	cmd := &GetCommand{Command: b}
	cmd.client.Loader = isolated()

	code := cmd.Run([]string{"-url", srv.URL, "-query", "page=0", "users"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Equal(t, "/users", got.URL.Path)
	assert.Equal(t, "page%3D0", got.URL.RawQuery)
	assert.Contains(t, ui.OutputWriter.String(), `"name": "a"`)
}

func TestGetCommand_Usage(t *testing.T) {
	_, _, _, b, ui := setup(t, http.StatusOK, `{}`)

	cmd := &GetCommand{Command: b}
	cmd.client.Loader = isolated()

	assert.Equal(t, 1, cmd.Run(nil))
	assert.Contains(t, ui.ErrorWriter.String(), "requires a resource")
}

func TestCallCommand(t *testing.T) {
	srv, got, gotBody, b, ui := setup(t, http.StatusAccepted, `{"result":"ok","data":{"id":"1"}}`)

	cmd := &CallCommand{Command: b}
	cmd.client.Loader = isolated()

	code := cmd.Run([]string{
		"-url", srv.URL,
		"-app-code", "app",
		"-session", "tok",
		"-header", "X-Trace=abc",
		"-body", `{"role":"backoffice"}`,
		"put", "admin/user/bob",
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/admin/user/bob", got.URL.Path)
	assert.Equal(t, "abc", got.Header.Get("X-Trace"))
	assert.Equal(t, "app", got.Header.Get("X-BAASBOX-APPCODE"))
	assert.Equal(t, "tok", got.Header.Get("X-BB-SESSION"))
	assert.JSONEq(t, `{"role":"backoffice"}`, *gotBody)

	assert.Contains(t, ui.ErrorWriter.String(), "HTTP 202")
	assert.Contains(t, ui.OutputWriter.String(), `"result": "ok"`)
}

func TestCallCommand_Form(t *testing.T) {
	srv, got, gotBody, b, ui := setup(t, http.StatusOK, `plain text`)

	cmd := &CallCommand{Command: b}
	cmd.client.Loader = isolated()

	code := cmd.Run([]string{"-url", srv.URL, "-app-code", "app", "-form", "-body", `{"a":"x y"}`, "POST", "login"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Empty(t, got.Header.Get("X-BAASBOX-APPCODE"))
	assert.Equal(t, "a=x%20y&appcode=app", *gotBody)
	assert.Contains(t, ui.OutputWriter.String(), `"plain text"`)
}

func TestCallCommand_BadHeader(t *testing.T) {
	_, _, _, b, ui := setup(t, http.StatusOK, `{}`)

	cmd := &CallCommand{Command: b}
	cmd.client.Loader = isolated()

	assert.Equal(t, 1, cmd.Run([]string{"-header", "novalue", "GET", "me"}))
	assert.Contains(t, ui.ErrorWriter.String(), "expected key=value")
}
