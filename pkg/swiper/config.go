package swiper

import (
	"time"

	"github.com/matzehuels/swiper/pkg/errors"
)

// DefaultDuration is the length of an animated one-slide step.
const DefaultDuration = 600 * time.Millisecond

// Config is the declarative carousel configuration consumed at construction.
type Config struct {
	// SpaceBetween is the gap between adjacent slides, in px.
	SpaceBetween float64

	// Loop enables infinite looping. It only takes effect while there are
	// at least as many slides as slides per view.
	Loop bool

	// Autoplay is accepted for compatibility with existing decks. No timer
	// is ever scheduled from it.
	Autoplay time.Duration

	// Duration of each animated step. Zero makes every step instant.
	Duration time.Duration

	// Breakpoints pins slides-per-view counts for individual tiers,
	// overriding what the slide hints resolve to.
	Breakpoints map[Tier]int
}

// DefaultConfig returns a config with no spacing, no looping and the
// default step duration.
func DefaultConfig() Config {
	return Config{Duration: DefaultDuration}
}

// Validate checks the config for values the carousel cannot honor.
func (c Config) Validate() error {
	if c.SpaceBetween < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "space between must be >= 0, got %v", c.SpaceBetween)
	}
	if c.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "duration must be >= 0, got %s", c.Duration)
	}
	if c.Autoplay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "autoplay must be >= 0, got %s", c.Autoplay)
	}
	for t, n := range c.Breakpoints {
		if !t.Valid() {
			return errors.New(errors.ErrCodeInvalidTier, "breakpoint override for tier %d out of range", int(t))
		}
		if n < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "breakpoint %s must be >= 0, got %d", t, n)
		}
	}
	return nil
}
