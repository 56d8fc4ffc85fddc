package cli

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/swiper"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	cellWidth int    // px per terminal column (0 = settings)
	logFile   string // where to send logs while the TUI owns the terminal
}

// playCommand creates the play command for showing a deck in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play [deck.toml]",
		Short: "Show a deck as an interactive carousel",
		Long: `Show a deck as an interactive carousel in the terminal.

The terminal width is converted to a pixel viewport (columns × cell width) so
the deck's breakpoints apply as they would in a browser. Resizing the terminal
re-lays the carousel out without animating.

Keys: ←/h previous, →/l next, home/end jump, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.cellWidth, "cell-width", 0, "pixels per terminal column (default: ui.cell_width)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while playing")

	return cmd
}

// runPlay loads the deck and runs the TUI until the user quits.
func (c *CLI) runPlay(ctx context.Context, args []string, opts playOpts) error {
	d, path, err := c.loadDeck(args)
	if err != nil {
		return err
	}

	cellWidth := opts.cellWidth
	if cellWidth <= 0 {
		cellWidth = c.Settings.UI.CellWidth
	}

	// The TUI owns the terminal; logs go to --log-file or nowhere.
	var out io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "open log file")
		}
		defer f.Close()
		out = f
	}
	c.Logger.SetOutput(out)
	defer c.Logger.SetOutput(c.logOut)

	prog := newProgress(c.Logger)
	c.Logger.Info("playing deck", "path", path, "slides", len(d.Slides), "cellWidth", cellWidth)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model, err := NewPlayModel(ctx, d, cellWidth, c.Settings.UI.FrameRate, swiper.WithLogger(c.Logger))
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "run terminal UI")
	}

	prog.done("session ended")
	return nil
}
