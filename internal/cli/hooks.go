package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports carousel and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnInit(_ context.Context, slides, spv int, width float64) {
	h.logger.Debug("init", "slides", slides, "slidesPerView", spv, "width", width)
}

func (h *logHooks) OnResize(_ context.Context, viewportWidth float64, spv int, width float64) {
	h.logger.Debug("resize", "viewport", viewportWidth, "slidesPerView", spv, "width", width)
}

func (h *logHooks) OnTransitionStart(_ context.Context, direction string, from, to int) {
	h.logger.Debug("transition", "command", direction, "from", from, "to", to)
}

func (h *logHooks) OnTransitionComplete(_ context.Context, direction string, index int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("transition failed", "command", direction, "err", err)
		return
	}
	h.logger.Debug("transition done", "command", direction, "index", index, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnRotate(_ context.Context, direction string, slides int) {
	h.logger.Debug("rotate", "direction", direction, "slides", slides)
}

func (h *logHooks) OnDropped(_ context.Context, command string) {
	h.logger.Debug("dropped", "command", command)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("http", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}
