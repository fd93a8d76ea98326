package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thde.io/marvel"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func lookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoader_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Loader{EnvFile: filepath.Join(dir, ".env")}.Load()
	require.NoError(t, err)

	assert.Equal(t, marvel.ProductionURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.PublicKey)
	assert.Empty(t, cfg.PrivateKey)
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
public_key = "file-public"
private_key = "file-private"
base_url = "https://file.example.com/v1/public/"
timeout = "10s"
`)
	envFile := writeFile(t, dir, ".env", "MARVEL_KEY=dotenv-public\nMARVEL_TIMEOUT=15s\n")

	cfg, err := Loader{
		Path:      path,
		EnvFile:   envFile,
		LookupEnv: lookup(map[string]string{EnvTimeout: "20s"}),
	}.Load()
	require.NoError(t, err)

	assert.Equal(t, "dotenv-public", cfg.PublicKey, ".env overrides the file")
	assert.Equal(t, "file-private", cfg.PrivateKey, "file value kept when nothing overrides it")
	assert.Equal(t, "https://file.example.com/v1/public/", cfg.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Timeout, "environment overrides .env")
}

func TestLoader_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "marvel"), 0o700))
	writeFile(t, filepath.Join(dir, "marvel"), "config.toml", `public_key = "xdg-public"`)

	cfg, err := Loader{}.Load()
	require.NoError(t, err)
	assert.Equal(t, "xdg-public", cfg.PublicKey)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		loader Loader
		isErr  error
	}{
		{
			name:   "explicit file missing",
			loader: Loader{Path: filepath.Join(dir, "missing.toml")},
		},
		{
			name:   "malformed file",
			loader: Loader{Path: writeFile(t, dir, "bad.toml", "public_key = ")},
		},
		{
			name:   "malformed timeout",
			loader: Loader{LookupEnv: lookup(map[string]string{EnvTimeout: "soon"})},
			isErr:  ErrInvalid,
		},
	}

	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load()
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.PublicKey = "public"
		cfg.PrivateKey = "private"
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		isErr  error
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "missing public key", modify: func(c *Config) { c.PublicKey = "" }, isErr: ErrMissingCredentials},
		{name: "missing private key", modify: func(c *Config) { c.PrivateKey = "" }, isErr: ErrMissingCredentials},
		{name: "relative base url", modify: func(c *Config) { c.BaseURL = "v1/public/" }, isErr: ErrInvalid},
		{name: "unparsable base url", modify: func(c *Config) { c.BaseURL = "https://[::1" }, isErr: ErrInvalid},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, isErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.isErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.isErr)
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	cfg.PublicKey = "public"
	cfg.PrivateKey = "very-secret"

	s := cfg.String()
	assert.NotContains(t, s, "very-secret")
	assert.Contains(t, s, "public_key=public")
	assert.Contains(t, s, "[redacted]")
}
