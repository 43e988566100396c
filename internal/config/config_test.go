package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "/tmp", cfg.Channels.Dir)
	require.Equal(t, ViewStdout, cfg.View.Backend)
	require.Equal(t, "info", cfg.Log.Level)

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestParseEmptyContentKeepsBase(t *testing.T) {
	cfg, warnings, err := Parse("   \n", Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, Default(), cfg)
}

func TestParseJSONCWithComments(t *testing.T) {
	content := `{
		// channel objects live here
		"channels": { "dir": "/run/ledsrv" },
		"view": { "backend": "none" },
	}`

	cfg, warnings, err := Parse(content, Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "/run/ledsrv", cfg.Channels.Dir)
	require.Equal(t, ViewNone, cfg.View.Backend)
	require.Equal(t, "info", cfg.Log.Level, "unset sections keep defaults")
}

func TestParseUnknownKeyWarns(t *testing.T) {
	_, warnings, err := Parse(`{"channel": {"dir": "/tmp"}}`, Default())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, `unknown config key "channel"`)
}

func TestParseRejectsNonObject(t *testing.T) {
	_, _, err := Parse(`[1, 2]`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a JSONC object")
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty dir", mutate: func(c *Config) { c.Channels.Dir = " " }, wantErr: "channels.dir"},
		{name: "empty backend", mutate: func(c *Config) { c.View.Backend = "" }, wantErr: "view.backend"},
		{name: "bad backend", mutate: func(c *Config) { c.View.Backend = "x11" }, wantErr: "view.backend"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			_, err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateRelativeDirWarns(t *testing.T) {
	cfg := Default()
	cfg.Channels.Dir = "run/ledsrv"

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "relative")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "absent.jsonc"))
	require.NoError(t, err)
	require.False(t, loaded.Exists)
	require.Equal(t, Default(), loaded.Config)
	require.Len(t, loaded.Warnings, 1)
	require.Contains(t, loaded.Warnings[0].Message, "not found")
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "debug"}}`), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.Exists)
	require.Equal(t, "debug", loaded.Config.Log.Level)
}

func TestResolvePathPrefersExplicit(t *testing.T) {
	path, err := ResolvePath("/etc/ledsrv.jsonc")
	require.NoError(t, err)
	require.Equal(t, "/etc/ledsrv.jsonc", path)
}

func TestResolvePathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := ResolvePath("")
	require.NoError(t, err)
	require.Equal(t, "/xdg/ledsrv/config.jsonc", path)
}
