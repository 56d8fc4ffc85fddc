package swiper

import (
	"context"
	"time"

	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/observability"
)

// SlideNext advances by one slide. It is a no-op while another transition
// is in flight, and at the end of a non-looping carousel.
func (c *Carousel) SlideNext(ctx context.Context) error {
	return c.step(ctx, true)
}

// SlidePrev moves back by one slide. It is a no-op while another transition
// is in flight, and at the start of a non-looping carousel.
func (c *Carousel) SlidePrev(ctx context.Context) error {
	return c.step(ctx, false)
}

// SlideTo animates directly to index, clamped to the valid range. It never
// loops and shares the transition gate with SlideNext and SlidePrev.
func (c *Carousel) SlideTo(ctx context.Context, index int) error {
	if !c.acquire(ctx, "to") {
		return nil
	}
	defer c.running.Store(false)

	st, err := c.snapshot()
	if err != nil {
		return err
	}

	target := index
	if limit := len(st.Nodes) - st.SlidesPerView; target > limit {
		target = limit
	}
	if target < 0 {
		target = 0
	}
	if target == st.Index {
		return nil
	}

	return c.animate(ctx, "to", st, st.Index, target)
}

// step implements one next/prev command. The gate is released on every
// return path, including the non-looping boundary.
func (c *Carousel) step(ctx context.Context, forward bool) error {
	command := "prev"
	if forward {
		command = "next"
	}
	if !c.acquire(ctx, command) {
		return nil
	}
	defer c.running.Store(false)

	st, err := c.snapshot()
	if err != nil {
		return err
	}

	index := st.Index
	boundary := st.AtStart()
	if forward {
		boundary = st.AtEnd()
	}

	if boundary {
		if !st.Loop {
			c.logger.Debug("boundary reached", "command", command, "index", index)
			return nil
		}

		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeAnimationFailed, err, "loop rotation")
		}

		dir, undo := Left, Right
		if forward {
			dir, undo = Right, Left
		}
		c.rotate(dir)

		c.logger.Debug("loop rotation", "direction", dir, "slides", len(st.Nodes))
		observability.Carousel().OnRotate(ctx, dir.String(), len(st.Nodes))

		// The rotation moved every view one position over; shift the working
		// index the same way so the snap lands on what is already visible.
		if forward {
			index--
		} else {
			index++
		}
		if err := c.track.Translate(ctx, st.offsetAt(index), 0); err != nil {
			// Put the views back where the uncompensated offset shows them.
			c.rotate(undo)
			c.logger.Debug("loop rotation undone", "direction", undo, "err", err)
			return errors.Wrap(errors.ErrCodeAnimationFailed, err, "snap after loop rotation")
		}
		if index >= 0 {
			c.setIndex(index)
		}
	}

	target := index - 1
	if forward {
		target = index + 1
	}
	return c.animate(ctx, command, st, index, target)
}

// acquire takes the transition gate, reporting a dropped command when it is
// already held.
func (c *Carousel) acquire(ctx context.Context, command string) bool {
	if c.running.CompareAndSwap(false, true) {
		return true
	}
	c.logger.Debug("transition dropped", "command", command)
	observability.Carousel().OnDropped(ctx, command)
	return false
}

// animate moves the track from index from to index to using the geometry of
// st, committing to on success.
func (c *Carousel) animate(ctx context.Context, command string, st State, from, to int) error {
	observability.Carousel().OnTransitionStart(ctx, command, from, to)
	start := time.Now()

	err := c.track.Translate(ctx, st.offsetAt(to), c.cfg.Duration)
	observability.Carousel().OnTransitionComplete(ctx, command, to, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAnimationFailed, err, "%s to index %d", command, to)
	}

	c.setIndex(to)
	c.logger.Debug("transition complete", "command", command, "index", to)
	return nil
}

// rotate re-mounts the views and mirrors the new order into the state.
func (c *Carousel) rotate(dir Direction) {
	c.reg.Rotate(dir)
	c.mu.Lock()
	c.state.Nodes = c.reg.Slides()
	c.mu.Unlock()
}

func (c *Carousel) snapshot() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return State{}, errors.New(errors.ErrCodeNotInitialized, "transition before init")
	}
	return c.state.clone(), nil
}

func (c *Carousel) setIndex(i int) {
	c.mu.Lock()
	c.state.Index = i
	c.mu.Unlock()
}
