package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/swiper/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address (empty = settings)
	instant bool   // skip animations
}

// serveCommand creates the serve command for hosting headless carousels.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host headless carousels behind a JSON API",
		Long: `Host headless carousels behind a JSON API.

Carousels are created by posting a deck file and are then driven with
next, prev, to and resize requests:

  curl -X POST --data-binary @deck.toml 'localhost:8080/carousels?viewport=1024'
  curl -X POST localhost:8080/carousels/<id>/next

With --instant every transition completes immediately instead of taking the
deck's duration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().BoolVar(&opts.instant, "instant", false, "complete transitions without animating")

	return cmd
}

// runServe serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, w io.Writer, opts serveOpts) error {
	addr := opts.addr
	if addr == "" {
		addr = c.Settings.Server.Addr
	}

	srv := server.New(
		server.WithLogger(loggerFromContext(ctx)),
		server.WithInstant(opts.instant),
		server.WithFrameRate(c.Settings.UI.FrameRate),
	)

	printInfo(w, "serving carousels on %s", addr)
	prog := newProgress(c.Logger)
	err := srv.ListenAndServe(ctx, addr)
	prog.done("server stopped")
	return err
}
