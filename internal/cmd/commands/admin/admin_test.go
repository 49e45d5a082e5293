package admin

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
	"github.com/hashicorp-forge/baasbox/pkg/baasbox"
)

type request struct {
	method, path string
}

func setup(t *testing.T) (*httptest.Server, *request, *base.Command, *cli.MockUi) {
	t.Helper()

	got := &request{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		*got = request{r.Method, r.URL.Path}
		_, _ = io.WriteString(w, `{"result":"ok","data":{"enabled":true}}`)
	}))
	t.Cleanup(srv.Close)

	ui := cli.NewMockUi()
	return srv, got, base.NewCommand(hclog.NewNullLogger(), ui), ui
}

func isolated() *config.Loader {
	return config.NewLoader().WithEnv(func(string) string { return "" })
}

func TestParseSection(t *testing.T) {
	tests := map[string]baasbox.Section{
		"password-recovery": baasbox.SectionPasswordRecovery,
		"password_recovery": baasbox.SectionPasswordRecovery,
		"PasswordRecovery":  baasbox.SectionPasswordRecovery,
		"application":       baasbox.SectionApplication,
		"push":              baasbox.SectionPush,
		"Images":            baasbox.SectionImages,
	}
	for in, want := range tests {
		got, err := parseSection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseSection("social")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password-recovery")
}

func TestSettingsCommand(t *testing.T) {
	tests := []struct {
		args []string
		path string
	}{
		{nil, "/admin/configuration/dump.json"},
		{[]string{"push"}, "/admin/configuration/Push"},
	}

	for _, tt := range tests {
		srv, got, b, ui := setup(t)
		cmd := &SettingsCommand{Command: b}
		cmd.client.Loader = isolated()

		args := append([]string{"-url", srv.URL, "-session", "admin"}, tt.args...)
		require.Equal(t, 0, cmd.Run(args), ui.ErrorWriter.String())
		assert.Equal(t, http.MethodGet, got.method)
		assert.Equal(t, tt.path, got.path)
	}
}

func TestSetCommand(t *testing.T) {
	srv, got, b, ui := setup(t)
	cmd := &SetCommand{Command: b}
	cmd.client.Loader = isolated()

	code := cmd.Run([]string{"-url", srv.URL, "application", "application.name", "demo"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/admin/configuration/Application/application.name/demo", got.path)
}

func TestSetCommand_UnknownSection(t *testing.T) {
	_, _, b, ui := setup(t)
	cmd := &SetCommand{Command: b}
	cmd.client.Loader = isolated()

	assert.Equal(t, 1, cmd.Run([]string{"bogus", "k", "v"}))
	assert.Contains(t, ui.ErrorWriter.String(), "unknown configuration section")
}

func TestEndpointsCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		method string
		path   string
	}{
		{"List", nil, http.MethodGet, "/admin/endpoints"},
		{"Show", []string{"push"}, http.MethodGet, "/admin/endpoints/push"},
		{"Enable", []string{"-enable", "push"}, http.MethodPut, "/admin/endpoints/push/enabled"},
		{"Disable", []string{"-disable", "push"}, http.MethodDelete, "/admin/endpoints/push/enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got, b, ui := setup(t)
			cmd := &EndpointsCommand{Command: b}
			cmd.client.Loader = isolated()

			args := append([]string{"-url", srv.URL}, tt.args...)
			require.Equal(t, 0, cmd.Run(args), ui.ErrorWriter.String())
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.path, got.path)
		})
	}
}

func TestEndpointsCommand_FlagConflicts(t *testing.T) {
	_, _, b, ui := setup(t)
	cmd := &EndpointsCommand{Command: b}
	cmd.client.Loader = isolated()

	assert.Equal(t, 1, cmd.Run([]string{"-enable", "-disable", "push"}))
	assert.Equal(t, 1, cmd.Run([]string{"-enable"}))
	assert.Contains(t, ui.ErrorWriter.String(), "require a group")
}
