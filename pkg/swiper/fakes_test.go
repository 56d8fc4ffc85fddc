package swiper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

type translateCall struct {
	offset   float64
	duration time.Duration
}

// fakeTrack records every call. Animated translates (duration > 0) signal
// started and then wait for block to close, when those channels are set.
type fakeTrack struct {
	mu      sync.Mutex
	calls   []translateCall
	renders []Geometry
	started chan struct{}
	block   chan struct{}
	err     error
}

func (f *fakeTrack) Translate(ctx context.Context, offset float64, d time.Duration) error {
	f.mu.Lock()
	f.calls = append(f.calls, translateCall{offset: offset, duration: d})
	started, block, err := f.started, f.block, f.err
	f.mu.Unlock()

	if d > 0 {
		if started != nil {
			started <- struct{}{}
		}
		if block != nil {
			select {
			case <-block:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func (f *fakeTrack) Render(g Geometry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, g)
}

func (f *fakeTrack) translates() []translateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]translateCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeTrack) animated() int {
	n := 0
	for _, c := range f.translates() {
		if c.duration > 0 {
			n++
		}
	}
	return n
}

// fakeContainer refuses to mount a second view without a detach in between.
type fakeContainer struct {
	mounted  View
	detaches int
	inserts  int
}

func (f *fakeContainer) Detach() {
	f.mounted = nil
	f.detaches++
}

func (f *fakeContainer) Insert(v View) {
	if f.mounted != nil {
		panic(fmt.Sprintf("insert %v into container already holding %v", v, f.mounted))
	}
	f.mounted = v
	f.inserts++
}

// newTestRegistry registers n slides whose views are their indices.
func newTestRegistry(n int, hints ...Hint) (*Registry, []*fakeContainer) {
	reg := NewRegistry()
	containers := make([]*fakeContainer, n)
	for i := 0; i < n; i++ {
		var h Hint
		if i < len(hints) {
			h = hints[i]
		}
		containers[i] = &fakeContainer{}
		reg.Append(Slide{ID: fmt.Sprintf("s%d", i), Hint: h}, containers[i], i)
	}
	return reg, containers
}

// visibleWidths reports the first visible slides as laid out.
func visibleWidths(n, visible int, width float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < visible && i < n; i++ {
		out[i] = width
	}
	return out
}

// newTestCarousel builds an initialized carousel of n slides showing spv
// at once inside a container of containerWidth px.
func newTestCarousel(t *testing.T, n, spv int, containerWidth float64, cfg Config) (*Carousel, *fakeTrack, *Registry) {
	t.Helper()
	reg, _ := newTestRegistry(n)
	tr := &fakeTrack{}
	c, err := New(cfg, reg, tr)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m := Measurement{ContainerWidth: containerWidth, RenderedWidths: visibleWidths(n, spv, containerWidth/float64(spv))}
	if err := c.Init(context.Background(), m); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return c, tr, reg
}
