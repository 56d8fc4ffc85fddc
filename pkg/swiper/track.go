package swiper

import (
	"context"
	"time"
)

// Track is the element holding all slides side by side.
type Track interface {
	// Translate moves the track so that offset px are scrolled out on the
	// left, taking duration to do so. It blocks until the move has visually
	// completed, returning immediately when duration is zero.
	Translate(ctx context.Context, offset float64, duration time.Duration) error

	// Render applies slide and track widths. It must be idempotent.
	Render(g Geometry)
}

// ResizeEvent reports new viewport and container widths.
type ResizeEvent struct {
	ViewportWidth  float64 `json:"viewport"`
	ContainerWidth float64 `json:"container"`
}
