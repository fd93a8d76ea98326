// Package cli implements the marvel command-line interface.
//
// The commands are thin wrappers around the [marvel.Client]:
//   - search: list characters whose name starts with a prefix
//   - events: list the events a character appears in
//   - first-event: the earliest event two characters share
//   - shared-events: every event two characters share
//
// Credentials are read by package config. All commands support --verbose (-v)
// for debug-level logging of the requests made.
package cli

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"thde.io/marvel"
	"thde.io/marvel/internal/buildinfo"
	"thde.io/marvel/internal/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	loadConfig func(path string) (*config.Config, error)
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		loadConfig: config.Load,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "marvel",
		Short:        "Explore characters and events of the Marvel universe",
		Long:         `marvel queries the Marvel Comics API for characters and the events they appear in, and finds the first event two characters met in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/marvel/config.toml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.eventsCommand())
	root.AddCommand(c.firstEventCommand())
	root.AddCommand(c.sharedEventsCommand())

	return root
}

// client builds an API client from the loaded configuration.
func (c *CLI) client() (*marvel.Client, error) {
	cfg, err := c.loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "config", cfg)

	baseURL, err := cfg.URL()
	if err != nil {
		return nil, err
	}

	return marvel.New(
		cfg.PublicKey,
		cfg.PrivateKey,
		marvel.WithBaseURL(baseURL),
		marvel.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		marvel.WithLogger(c.Logger.WithPrefix("api")),
	), nil
}
