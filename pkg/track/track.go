// Package track provides a swiper.Track that eases its offset frame by frame
// in memory, for hosts that draw the carousel themselves (a terminal, an
// API client) instead of delegating movement to a layout engine.
//
// Every frame is published to an optional callback so a renderer can redraw:
//
//	tr := track.New(track.WithFrameRate(60), track.WithOnFrame(func(f track.Frame) {
//	    program.Send(frameMsg(f))
//	}))
package track

import (
	"context"
	"sync"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/matzehuels/swiper/pkg/swiper"
)

const (
	// DefaultFrameRate is the number of frames per second used when none is set.
	DefaultFrameRate = 60

	// MaxFrameRate bounds WithFrameRate so the frame interval stays positive.
	MaxFrameRate = 1000
)

// Frame is one published position of the track.
type Frame struct {
	Offset   float64
	Geometry swiper.Geometry
	Moving   bool
}

// Animated is an in-memory swiper.Track.
type Animated struct {
	frameRate int
	onFrame   func(Frame)
	ease      ease.TweenFunc

	mu       sync.Mutex
	offset   float64
	geometry swiper.Geometry
	moving   int
}

// Option configures an Animated track.
type Option func(*Animated)

// WithFrameRate sets the frames per second of animated moves, capped at
// MaxFrameRate. Non-positive values keep the default.
func WithFrameRate(fps int) Option {
	return func(a *Animated) {
		if fps > 0 {
			a.frameRate = min(fps, MaxFrameRate)
		}
	}
}

// WithOnFrame registers a callback invoked after every offset change.
// It is called from the goroutine running Translate.
func WithOnFrame(fn func(Frame)) Option {
	return func(a *Animated) {
		a.onFrame = fn
	}
}

// WithEasing replaces the default ease.InOutCubic curve.
func WithEasing(fn ease.TweenFunc) Option {
	return func(a *Animated) {
		if fn != nil {
			a.ease = fn
		}
	}
}

// New creates a track at offset 0.
func New(opts ...Option) *Animated {
	a := &Animated{frameRate: DefaultFrameRate, ease: ease.InOutCubic}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Translate implements swiper.Track.
func (a *Animated) Translate(ctx context.Context, offset float64, duration time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if duration <= 0 {
		a.set(offset)
		return nil
	}

	a.mu.Lock()
	from := a.offset
	a.moving++
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.moving--
		a.mu.Unlock()
		a.publish()
	}()

	tween := gween.New(float32(from), float32(offset), float32(duration.Seconds()), a.ease)
	ticker := time.NewTicker(a.frameInterval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			current, finished := tween.Update(float32(now.Sub(last).Seconds()))
			last = now
			if finished {
				a.set(offset)
				return nil
			}
			a.set(float64(current))
		}
	}
}

func (a *Animated) frameInterval() time.Duration {
	return time.Second / time.Duration(a.frameRate)
}

// Render implements swiper.Track.
func (a *Animated) Render(g swiper.Geometry) {
	a.mu.Lock()
	a.geometry = g
	a.mu.Unlock()
	a.publish()
}

// Offset returns the current offset.
func (a *Animated) Offset() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// Snapshot returns the current frame.
func (a *Animated) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Frame{Offset: a.offset, Geometry: a.geometry, Moving: a.moving > 0}
}

func (a *Animated) set(offset float64) {
	a.mu.Lock()
	a.offset = offset
	a.mu.Unlock()
	a.publish()
}

func (a *Animated) publish() {
	if a.onFrame != nil {
		a.onFrame(a.Snapshot())
	}
}
