package swiper

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/observability"
)

// Carousel owns the state of one carousel and drives its Track.
//
// All methods are safe to call from multiple goroutines, but the design
// follows a single event loop: the state lock is never held across a
// Translate, so a resize may update geometry while a transition animates.
type Carousel struct {
	cfg    Config
	reg    *Registry
	track  Track
	logger *log.Logger

	mu    sync.Mutex
	state State
	ready bool

	// running is the transition gate. Commands arriving while it is held
	// are dropped.
	running atomic.Bool
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Carousel) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a carousel over the slides in reg. Call Init once the host
// has rendered the slides.
func New(cfg Config, reg *Registry, track Track, opts ...Option) (*Carousel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "registry is required")
	}
	if track == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "track is required")
	}

	c := &Carousel{
		cfg:    cfg,
		reg:    reg,
		track:  track,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the configuration the carousel was built with.
func (c *Carousel) Config() Config {
	return c.cfg
}

// Registry returns the slide registry backing the carousel.
func (c *Carousel) Registry() *Registry {
	return c.reg
}

// Init performs the first layout from measured slide widths.
//
// Slides per view is the number of slides the host actually laid out, not
// the breakpoint table; the table is built here for later resizes.
func (c *Carousel) Init(ctx context.Context, m Measurement) error {
	if m.ContainerWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "container width must be >= 0, got %v", m.ContainerWidth)
	}

	slides := c.reg.Slides()
	if len(m.RenderedWidths) != len(slides) {
		return errors.New(errors.ErrCodeInvalidInput, "measured %d widths for %d slides", len(m.RenderedWidths), len(slides))
	}
	hints := make([]Hint, len(slides))
	for i, s := range slides {
		hints[i] = s.Hint
	}
	bp := ResolveBreakpoints(hints).Merge(c.cfg.Breakpoints)

	measured := InitialSlidesPerView(m.RenderedWidths)
	if measured < 1 {
		c.logger.Warn("no rendered slides measured, assuming one per view", "slides", len(slides))
	}

	c.mu.Lock()
	st := State{
		Nodes:        slides,
		Breakpoints:  bp,
		SpaceBetween: c.cfg.SpaceBetween,
	}
	st.setSlidesPerView(measured, c.cfg.Loop)
	st.Width = SlideWidth(m.ContainerWidth, st.SlidesPerView)
	st.TrackWidth = TrackWidth(st.Width, len(slides))
	c.state = st
	c.ready = true
	g := st.Geometry()
	c.mu.Unlock()

	c.track.Render(g)

	c.logger.Debug("carousel initialized",
		"slides", len(slides),
		"slidesPerView", st.SlidesPerView,
		"width", st.Width,
		"loop", st.Loop,
		"breakpoints", bp.String())
	observability.Carousel().OnInit(ctx, len(slides), st.SlidesPerView, st.Width)

	return nil
}

// Resize re-applies the breakpoint table for a new viewport and snaps the
// track, without animating, so the current index stays in view.
// It never touches the transition gate.
func (c *Carousel) Resize(ctx context.Context, ev ResizeEvent) error {
	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		return errors.New(errors.ErrCodeNotInitialized, "resize before init")
	}

	tier, count, ok := c.state.Breakpoints.Active(ev.ViewportWidth)
	if ok {
		c.state.setSlidesPerView(count, c.cfg.Loop)
	}
	c.state.Width = SlideWidth(ev.ContainerWidth, c.state.SlidesPerView)
	c.state.TrackWidth = TrackWidth(c.state.Width, len(c.state.Nodes))
	c.state.clampIndex()
	st := c.state
	c.mu.Unlock()

	c.track.Render(st.Geometry())

	c.logger.Debug("carousel resized",
		"viewport", ev.ViewportWidth,
		"tier", tier,
		"matched", ok,
		"slidesPerView", st.SlidesPerView,
		"width", st.Width)
	observability.Carousel().OnResize(ctx, ev.ViewportWidth, st.SlidesPerView, st.Width)

	if err := c.track.Translate(ctx, st.Offset(), 0); err != nil {
		return errors.Wrap(errors.ErrCodeAnimationFailed, err, "snap after resize")
	}
	return nil
}

// Watch applies resize events until ctx is done or events is closed.
// Resize failures are logged and do not stop the subscription.
func (c *Carousel) Watch(ctx context.Context, events <-chan ResizeEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := c.Resize(ctx, ev); err != nil {
				c.logger.Warn("resize failed", "err", err)
			}
		}
	}
}

// State returns a snapshot of the current state.
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Ready reports whether Init has completed.
func (c *Carousel) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Running reports whether a transition is in flight.
func (c *Carousel) Running() bool {
	return c.running.Load()
}
