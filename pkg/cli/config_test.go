package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfig_ActiveProfile(t *testing.T) {
	cfg := &UserConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {Host: "http://localhost:8080", Output: "table"},
			"staging": {Host: "https://staging.example.com", Output: "json"},
		},
	}

	tests := []struct {
		name     string
		override string
		wantHost string
		wantErr  string
	}{
		{name: "uses current profile", wantHost: "http://localhost:8080"},
		{name: "override to staging", override: "staging", wantHost: "https://staging.example.com"},
		{name: "nonexistent profile", override: "nonexistent", wantErr: `profile "nonexistent" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := cfg.ActiveProfile(tt.override)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, p.Host)
		})
	}
}

func TestLoadSaveUserConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := &UserConfig{
		CurrentProfile: "test",
		Profiles: map[string]Profile{
			"test": {Host: "http://test:8080", GlobalQueryURL: "http://fed:9000/query/global"},
		},
	}
	require.NoError(t, SaveUserConfig(cfg))

	info, err := os.Stat(filepath.Join(dir, ".datasync", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", loaded.CurrentProfile)
	require.Contains(t, loaded.Profiles, "test")
	assert.Equal(t, "http://test:8080", loaded.Profiles["test"].Host)
	assert.Equal(t, "http://fed:9000/query/global", loaded.Profiles["test"].GlobalQueryURL)
}

func TestLoadUserConfig_NotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := LoadUserConfig()
	require.Error(t, err)
}

func TestConfigCmd_SetAndUseProfile(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"status":"ok"}`))
	defer srv.Close()

	cmd, out := newTestRootCmd(t, srv, "config", "set-profile", "--name", "lab", "--api-host", srv.URL, "--default-output", "json")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `Profile "lab" saved`)

	cfg, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.CurrentProfile)
	assert.Equal(t, srv.URL, cfg.Profiles["lab"].Host)

	cmd = newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"config", "use-profile", "lab"})
	require.NoError(t, cmd.Execute())

	cfg, err = LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "lab", cfg.CurrentProfile)

	cmd = newRootCmd()
	cmd.SetArgs([]string{"config", "use-profile", "missing"})
	cmd.SetOut(out)
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "missing" not found`)
}

func TestRootCmd_ProfileSuppliesHost(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"status":"ok"}`))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATASYNC_HOST", "")
	t.Setenv("DATASYNC_OUTPUT", "")
	require.NoError(t, SaveUserConfig(&UserConfig{
		CurrentProfile: "lab",
		Profiles:       map[string]Profile{"lab": {Host: srv.URL, Output: "json"}},
	}))

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"health"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "/health", rec.last().Path)
	assert.JSONEq(t, `{"status":"ok"}`, out.String())
}

func TestRootCmd_UnknownProfileFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--profile", "nope", "health"})
	err := cmd.Execute()
	require.EqualError(t, err, `profile "nope" not found`)
}

func TestConfigShow_PrintsResolvedSettings(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{}`))
	defer srv.Close()

	cmd, out := newTestRootCmd(t, srv, "-o", "json", "config", "show")
	require.NoError(t, cmd.Execute())

	var got struct {
		Resolved map[string]string `json:"resolved"`
		File     *UserConfig       `json:"file"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, srv.URL, got.Resolved["host"])
	assert.Equal(t, srv.URL+"/query/global", got.Resolved["global-query-url"])
	assert.Nil(t, got.File)
	assert.Zero(t, rec.count())

	cmd, out = newTestRootCmd(t, srv, "--global-query-url", "http://fed:9000/q", "config", "show")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "http://fed:9000/q")
	assert.Contains(t, out.String(), "No configuration found")
}
