package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/swiper/pkg/swiper"
	"github.com/matzehuels/swiper/pkg/track"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	width     float64 // viewport width in px
	container float64 // container width in px (0 = same as viewport)
	json      bool    // print JSON instead of tables
}

// layoutReport is what the layout command computes for one viewport.
type layoutReport struct {
	Deck        string             `json:"deck"`
	Viewport    float64            `json:"viewport"`
	Container   float64            `json:"container"`
	Tier        string             `json:"tier,omitempty"`
	Breakpoints swiper.Breakpoints `json:"breakpoints"`
	Measured    int                `json:"measuredSlidesPerView"`
	Resized     int                `json:"resizedSlidesPerView"`
	Geometry    swiper.Geometry    `json:"geometry"`
	Loop        bool               `json:"loop"`
}

// layoutCommand creates the layout command for inspecting responsive layout.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{width: 1024}

	cmd := &cobra.Command{
		Use:   "layout [deck.toml]",
		Short: "Show the breakpoint table and geometry of a deck",
		Long: `Show the breakpoint table and geometry of a deck.

The layout command resolves the tier table from the slide hints, then lays the
deck out at the given viewport width. It reports both the slides-per-view of
a first render (slides actually visible) and the count a later resize to the
same width would apply from the table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.width, "width", "w", opts.width, "viewport width in px")
	cmd.Flags().Float64Var(&opts.container, "container", 0, "container width in px (default: viewport width)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")

	return cmd
}

// runLayout loads the deck, lays it out, and prints the report.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, args []string, opts layoutOpts) error {
	report, err := c.computeLayout(ctx, args, opts)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(w, StyleTitle.Render("Breakpoints"))
	fmt.Fprintln(w, renderTierTable(report.Breakpoints, report.Tier))
	fmt.Fprintln(w)

	tier := report.Tier
	if tier == "" {
		tier = StyleDim.Render("none")
		printWarning(w, "no tier is active at %.0fpx; resizes keep slides-per-view", report.Viewport)
	}
	printKeyValue(w, "Deck", report.Deck)
	printKeyValue(w, "Viewport", formatPx(report.Viewport))
	printKeyValue(w, "Active tier", tier)
	printKeyValue(w, "First render", strconv.Itoa(report.Measured)+" per view")
	printKeyValue(w, "After resize", strconv.Itoa(report.Resized)+" per view")
	printKeyValue(w, "Slide width", formatPx(report.Geometry.SlideWidth))
	printKeyValue(w, "Track width", formatPx(report.Geometry.TrackWidth))
	printKeyValue(w, "Loop", strconv.FormatBool(report.Loop))
	fmt.Fprintln(w)
	printNextStep(w, "Try it", appName+" play "+report.Deck)

	return nil
}

// computeLayout initializes a carousel for the deck at the requested width.
func (c *CLI) computeLayout(ctx context.Context, args []string, opts layoutOpts) (layoutReport, error) {
	d, path, err := c.loadDeck(args)
	if err != nil {
		return layoutReport{}, err
	}
	cfg, err := d.Config()
	if err != nil {
		return layoutReport{}, err
	}

	container := opts.container
	if container <= 0 {
		container = opts.width
	}

	reg := swiper.NewRegistry()
	d.Register(reg)
	car, err := swiper.New(cfg, reg, track.New(), swiper.WithLogger(loggerFromContext(ctx)))
	if err != nil {
		return layoutReport{}, err
	}
	if err := car.Init(ctx, swiper.MeasureHints(reg.Hints(), opts.width, container)); err != nil {
		return layoutReport{}, err
	}
	st := car.State()

	report := layoutReport{
		Deck:        path,
		Viewport:    opts.width,
		Container:   container,
		Breakpoints: st.Breakpoints,
		Measured:    st.SlidesPerView,
		Resized:     st.SlidesPerView,
		Geometry:    st.Geometry(),
		Loop:        st.Loop,
	}
	if tier, n, ok := st.Breakpoints.Active(opts.width); ok {
		report.Tier = tier.String()
		report.Resized = n
	}
	return report, nil
}

// renderTierTable draws the breakpoint table, marking the active tier.
func renderTierTable(bp swiper.Breakpoints, active string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tiers := swiper.Tiers()

	rows := make([][]string, 0, len(tiers))
	for _, t := range tiers {
		count := "—"
		if n := bp.Count(t); n > 0 {
			count = strconv.Itoa(n)
		}
		marker := ""
		if t.String() == active {
			marker = "▸"
		}
		rows = append(rows, []string{marker, t.String(), formatPx(t.Threshold()), count})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tier", "From", "Per view").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(tiers) && tiers[row].String() == active {
				return base.Foreground(colorCyan).Bold(true)
			}
			if row < len(tiers) && bp.Count(tiers[row]) == 0 {
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render()
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
