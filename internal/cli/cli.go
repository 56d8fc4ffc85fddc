// Package cli implements the swiper command-line interface.
//
// # Commands
//
//   - play: Show a deck as an interactive carousel in the terminal
//   - layout: Print the breakpoint table and geometry for a viewport width
//   - serve: Host headless carousels behind a JSON HTTP API
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers observability hooks that log every carousel transition and
// HTTP request. Loggers are passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/swiper/internal/settings"
	"github.com/matzehuels/swiper/pkg/buildinfo"
	"github.com/matzehuels/swiper/pkg/deck"
	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "swiper"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Settings settings.Settings

	logOut io.Writer

	// loadSettings is replaced in tests.
	loadSettings func() (settings.Settings, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		logOut:       w,
		loadSettings: settings.Load,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Swiper slides through decks of cards",
		Long:         `Swiper is a responsive carousel engine. It lays slides out per viewport breakpoint, animates between them, and loops by rotating slides around the track.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.playCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads settings, attaches the logger to the command context and,
// at debug level, installs logging hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	s, err := c.loadSettings()
	if err != nil {
		return err
	}
	c.Settings = s

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetCarouselHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Deck Helpers
// =============================================================================

// deckPath picks the deck argument, falling back to deck.default_path.
func (c *CLI) deckPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p := c.Settings.Deck.DefaultPath; p != "" {
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no deck given and deck.default_path is not set")
}

// loadDeck resolves and loads the deck for a command.
func (c *CLI) loadDeck(args []string) (*deck.Deck, string, error) {
	path, err := c.deckPath(args)
	if err != nil {
		return nil, "", err
	}
	d, err := deck.Load(path)
	if err != nil {
		return nil, path, err
	}
	return d, path, nil
}
