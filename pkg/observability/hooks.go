// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about carousel layout, transitions and loop rotations, and
// about requests served by the control API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCarouselHooks(&myCarouselHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Carousel().OnTransitionStart(ctx, "next", from, to)
//	// ... animate ...
//	observability.Carousel().OnTransitionComplete(ctx, "next", to, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Carousel Hooks
// =============================================================================

// CarouselHooks receives events from the carousel state machine.
type CarouselHooks interface {
	// Layout events
	OnInit(ctx context.Context, slides, slidesPerView int, width float64)
	OnResize(ctx context.Context, viewportWidth float64, slidesPerView int, width float64)

	// Transition events
	OnTransitionStart(ctx context.Context, direction string, from, to int)
	OnTransitionComplete(ctx context.Context, direction string, index int, duration time.Duration, err error)

	// OnRotate records a loop re-mount of all slide views.
	OnRotate(ctx context.Context, direction string, slides int)

	// OnDropped records a command ignored because a transition was in flight.
	OnDropped(ctx context.Context, command string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the control API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCarouselHooks is a no-op implementation of CarouselHooks.
type NoopCarouselHooks struct{}

func (NoopCarouselHooks) OnInit(context.Context, int, int, float64)              {}
func (NoopCarouselHooks) OnResize(context.Context, float64, int, float64)        {}
func (NoopCarouselHooks) OnTransitionStart(context.Context, string, int, int)    {}
func (NoopCarouselHooks) OnRotate(context.Context, string, int)                  {}
func (NoopCarouselHooks) OnDropped(context.Context, string)                      {}
func (NoopCarouselHooks) OnTransitionComplete(context.Context, string, int, time.Duration, error) {
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	carouselHooks CarouselHooks = NoopCarouselHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetCarouselHooks registers custom carousel hooks.
// This should be called once at application startup before any carousel is built.
func SetCarouselHooks(h CarouselHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		carouselHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Carousel returns the registered carousel hooks.
func Carousel() CarouselHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return carouselHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	carouselHooks = NoopCarouselHooks{}
	httpHooks = NoopHTTPHooks{}
}
