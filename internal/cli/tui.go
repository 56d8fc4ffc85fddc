package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/swiper/pkg/deck"
	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/swiper"
	"github.com/matzehuels/swiper/pkg/track"
)

// Card styles
var (
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	cardBodyStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	helpStyle      = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

const (
	// minCardCells is the narrowest card that still fits a border and a letter.
	minCardCells = 5
	// chromeLines is the number of lines used around the track.
	chromeLines = 4
)

// =============================================================================
// Messages
// =============================================================================

// frameMsg carries a track position to redraw.
type frameMsg track.Frame

// readyMsg reports the outcome of the first layout.
type readyMsg struct{ err error }

// doneMsg reports the outcome of a transition or resize.
type doneMsg struct{ err error }

// =============================================================================
// PlayModel - Interactive carousel
// =============================================================================

// PlayModel is the bubbletea model for the play command.
//
// Carousel operations block while the track animates, so they always run
// inside tea.Cmd goroutines. The track publishes its frames into a one-slot
// channel that keeps only the latest frame.
type PlayModel struct {
	ctx       context.Context
	deck      *deck.Deck
	carousel  *swiper.Carousel
	mounts    []*deck.Mount
	frames    chan track.Frame
	cellWidth int

	// initSent is set once the first layout has been dispatched. Sizes that
	// arrive before it reports back are folded into one resize.
	initSent      bool
	pendingResize bool

	Width  int
	Height int
	Frame  track.Frame
	Ready  bool
	Err    error
}

// NewPlayModel mounts d into a fresh carousel. cellWidth is the number of
// pixels one terminal column stands for.
func NewPlayModel(ctx context.Context, d *deck.Deck, cellWidth, frameRate int, opts ...swiper.Option) (PlayModel, error) {
	if cellWidth <= 0 {
		return PlayModel{}, errors.New(errors.ErrCodeInvalidConfig, "cell width must be positive, got %d", cellWidth)
	}
	cfg, err := d.Config()
	if err != nil {
		return PlayModel{}, err
	}

	frames := make(chan track.Frame, 1)
	tr := track.New(track.WithFrameRate(frameRate), track.WithOnFrame(func(f track.Frame) {
		latest(frames, f)
	}))

	reg := swiper.NewRegistry()
	mounts := d.Register(reg)
	car, err := swiper.New(cfg, reg, tr, opts...)
	if err != nil {
		return PlayModel{}, err
	}

	return PlayModel{
		ctx:       ctx,
		deck:      d,
		carousel:  car,
		mounts:    mounts,
		frames:    frames,
		cellWidth: cellWidth,
	}, nil
}

// latest replaces whatever frame is waiting in ch with f.
func latest(ch chan track.Frame, f track.Frame) {
	for {
		select {
		case ch <- f:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Carousel returns the carousel driven by the model.
func (m PlayModel) Carousel() *swiper.Carousel {
	return m.carousel
}

func (m PlayModel) Init() tea.Cmd {
	return m.waitFrame()
}

func (m PlayModel) waitFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return frameMsg(f)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		px := m.viewportPx()
		if !m.initSent {
			m.initSent = true
			return m, m.run(func(ctx context.Context, c *swiper.Carousel) error {
				return c.Init(ctx, swiper.MeasureHints(c.Registry().Hints(), px, px))
			}, true)
		}
		if !m.Ready {
			m.pendingResize = true
			return m, nil
		}
		return m, m.resize()

	case frameMsg:
		m.Frame = track.Frame(msg)
		return m, m.waitFrame()

	case readyMsg:
		m.Ready = msg.err == nil
		m.Err = msg.err
		if msg.err != nil {
			m.initSent = false
			return m, nil
		}
		if m.pendingResize {
			m.pendingResize = false
			return m, m.resize()
		}

	case doneMsg:
		m.Err = msg.err
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	if !m.Ready {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		return m, m.run(func(ctx context.Context, c *swiper.Carousel) error {
			return c.SlidePrev(ctx)
		}, false)
	case "right", "l", " ":
		return m, m.run(func(ctx context.Context, c *swiper.Carousel) error {
			return c.SlideNext(ctx)
		}, false)
	case "home", "g":
		return m, m.run(func(ctx context.Context, c *swiper.Carousel) error {
			return c.SlideTo(ctx, 0)
		}, false)
	case "end", "G":
		return m, m.run(func(ctx context.Context, c *swiper.Carousel) error {
			return c.SlideTo(ctx, c.Registry().Len())
		}, false)
	}
	return m, nil
}

// viewportPx converts the terminal width to pixels.
func (m PlayModel) viewportPx() float64 {
	return float64(m.Width * m.cellWidth)
}

// resize re-lays the carousel out for the current terminal width.
func (m PlayModel) resize() tea.Cmd {
	px := m.viewportPx()
	return m.run(func(ctx context.Context, c *swiper.Carousel) error {
		return c.Resize(ctx, swiper.ResizeEvent{ViewportWidth: px, ContainerWidth: px})
	}, false)
}

// run wraps a carousel operation in a command.
func (m PlayModel) run(fn func(context.Context, *swiper.Carousel) error, init bool) tea.Cmd {
	ctx, c := m.ctx, m.carousel
	return func() tea.Msg {
		err := fn(ctx, c)
		if init {
			return readyMsg{err: err}
		}
		return doneMsg{err: err}
	}
}

func (m PlayModel) View() string {
	var b strings.Builder

	title := m.deck.Title
	if title == "" {
		title = appName
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	if !m.Ready {
		if m.Err != nil {
			b.WriteString(errorStyle.Render(m.Err.Error()))
		} else {
			b.WriteString(helpStyle.Render("measuring…"))
		}
		return b.String()
	}

	st := m.carousel.State()
	b.WriteString(m.renderTrack(st))
	b.WriteString("\n\n")
	b.WriteString(m.status(st))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/h prev  →/l next  home/end jump  q quit"))

	return b.String()
}

// renderTrack draws every mounted card side by side and crops the result to
// the terminal at the current offset.
func (m PlayModel) renderTrack(st swiper.State) string {
	g := m.Frame.Geometry
	if g.SlideWidth == 0 {
		g = st.Geometry()
	}

	cardCells := max(m.cells(g.SlideWidth), minCardCells)
	gap := strings.Repeat(" ", max(m.cells(g.SpaceBetween), 0))
	height := max(m.Height-chromeLines-3, 3)

	parts := make([]string, 0, 2*len(m.mounts))
	for i, mt := range m.mounts {
		if i > 0 && gap != "" {
			parts = append(parts, gap)
		}
		parts = append(parts, renderCard(mt.Card(), cardCells, height))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	left := m.cells(m.Frame.Offset)
	lines := strings.Split(strip, "\n")
	for i, line := range lines {
		lines[i] = ansi.Cut(line, left, left+m.Width)
	}
	return strings.Join(lines, "\n")
}

// status summarizes the carousel position.
func (m PlayModel) status(st swiper.State) string {
	n := len(st.Nodes)
	last := min(st.Index+st.SlidesPerView, n)
	line := fmt.Sprintf("%d–%d of %d  ·  %d per view", st.Index+1, last, n, st.SlidesPerView)
	if tier, _, ok := st.Breakpoints.Active(float64(m.Width * m.cellWidth)); ok {
		line += "  ·  tier " + tier.String()
	}
	if st.Loop {
		line += "  ·  loop"
	}
	out := StyleDim.Render(line)
	if m.Err != nil {
		out += "  " + errorStyle.Render(errors.UserMessage(m.Err))
	}
	return out
}

// cells converts px to terminal columns.
func (m PlayModel) cells(px float64) int {
	return int(math.Round(px / float64(m.cellWidth)))
}

// renderCard draws one card exactly cells columns wide.
func renderCard(card *deck.Card, cells, height int) string {
	style := cardStyle.Width(cells - 2).Height(height)
	if card == nil {
		return style.Render("")
	}
	title := card.Title
	if title == "" {
		title = card.ID
	}
	content := cardTitleStyle.Render(title)
	if card.Body != "" {
		content += "\n\n" + cardBodyStyle.Render(card.Body)
	}
	return style.Render(content)
}
