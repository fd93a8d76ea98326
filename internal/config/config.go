// Package config loads the credentials and connection settings of the marvel CLI.
//
// Settings are read from, in increasing order of precedence:
//   - built-in defaults
//   - a TOML file (see [DefaultPath])
//   - a .env file in the working directory
//   - environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"thde.io/marvel"
)

const appName = "marvel"

// Environment variables.
const (
	EnvPublicKey  = "MARVEL_KEY"
	EnvPrivateKey = "MARVEL_SECRET_KEY"
	EnvBaseURL    = "MARVEL_BASE_URL"
	EnvTimeout    = "MARVEL_TIMEOUT"
)

// DefaultTimeout bounds a single request to the API.
const DefaultTimeout = 30 * time.Second

var (
	// ErrMissingCredentials is returned when a key is not configured.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrInvalid is returned for settings that cannot be used.
	ErrInvalid = errors.New("invalid configuration")
)

// Config holds all CLI configuration.
type Config struct {
	PublicKey  string        `toml:"public_key"`
	PrivateKey string        `toml:"private_key"`
	BaseURL    string        `toml:"base_url"`
	Timeout    time.Duration `toml:"timeout"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BaseURL: marvel.ProductionURL,
		Timeout: DefaultTimeout,
	}
}

// Loader reads configuration from its sources.
type Loader struct {
	// Path is the TOML file to read. If empty, [DefaultPath] is read when it exists.
	Path string
	// EnvFile is the dotenv file to read when it exists.
	EnvFile string
	// LookupEnv reads an environment variable.
	LookupEnv func(string) (string, bool)
}

// Load reads the configuration using the default sources.
// An explicit path must exist; the default file is optional.
func Load(path string) (*Config, error) {
	return Loader{Path: path, EnvFile: ".env", LookupEnv: os.LookupEnv}.Load()
}

// Load reads the configuration from l's sources.
func (l Loader) Load() (*Config, error) {
	cfg := Default()

	if err := l.loadFile(cfg); err != nil {
		return nil, err
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	if err := cfg.apply(env); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l Loader) loadFile(cfg *Config) error {
	path, explicit := l.Path, l.Path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil
		}
	}

	_, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	return nil
}

// environment merges the dotenv file with the process environment.
// Variables already set in the environment win, as with dotenv.
func (l Loader) environment() (map[string]string, error) {
	env := map[string]string{}

	if l.EnvFile != "" {
		values, err := godotenv.Read(l.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", l.EnvFile, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}

	if l.LookupEnv != nil {
		for _, key := range []string{EnvPublicKey, EnvPrivateKey, EnvBaseURL, EnvTimeout} {
			if v, ok := l.LookupEnv(key); ok {
				env[key] = v
			}
		}
	}

	return env, nil
}

func (c *Config) apply(env map[string]string) error {
	if v, ok := env[EnvPublicKey]; ok {
		c.PublicKey = v
	}
	if v, ok := env[EnvPrivateKey]; ok {
		c.PrivateKey = v
	}
	if v, ok := env[EnvBaseURL]; ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := env[EnvTimeout]; ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, EnvTimeout, err)
		}
		c.Timeout = d
	}

	return nil
}

// Validate reports whether the configuration can be used to call the API.
func (c *Config) Validate() error {
	if c.PublicKey == "" {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvPublicKey)
	}
	if c.PrivateKey == "" {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvPrivateKey)
	}

	if _, err := c.URL(); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalid, c.Timeout)
	}

	return nil
}

// URL parses the base URL.
func (c *Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalid, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: base url %q is not absolute", ErrInvalid, c.BaseURL)
	}

	return u, nil
}

// String implements [fmt.Stringer] without exposing the private key.
func (c *Config) String() string {
	private := ""
	if c.PrivateKey != "" {
		private = "[redacted]"
	}

	return fmt.Sprintf("public_key=%s private_key=%s base_url=%s timeout=%s", c.PublicKey, private, c.BaseURL, c.Timeout)
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/marvel/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
