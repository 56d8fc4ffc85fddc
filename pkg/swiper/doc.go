// Package swiper implements the state machine behind a horizontally scrolling
// carousel: responsive slides-per-view resolution, slide geometry, animated
// transitions of the slide track, and the loop re-mounting that makes a finite
// list of slides appear infinite.
//
// # Collaborators
//
// The package never draws anything itself. Hosts supply:
//
//   - a [Registry] of slide slots, each backed by a [Container] that can detach
//     its mounted [View] and insert another one
//   - a [Track], which applies slide widths and moves the row of slides to a
//     horizontal offset, blocking until the move has visually completed
//   - resize notifications, delivered to [Carousel.Resize] directly or through
//     a channel consumed by [Carousel.Watch]
//
// # Breakpoints
//
// Each slide declares a [Hint]: either an untagged "visible by default" marker
// or the narrowest [Tier] from which it becomes visible. [ResolveBreakpoints]
// folds those hints into a per-tier slides-per-view table. Tiers without an
// explicit slide inherit once from the nearest populated lower tier:
//
//	hints := []swiper.Hint{
//	    {Visible: true},
//	    {Visible: true},
//	    {Tier: swiper.TierMD},
//	}
//	bp := swiper.ResolveBreakpoints(hints) // 0:2 sm:0 md:3 lg:0 xl:0
//
// # Transitions
//
// [Carousel.SlideNext] and [Carousel.SlidePrev] are guarded by a single
// in-flight flag. A command issued while another transition is running is
// dropped, not queued. With looping enabled, crossing either end rotates the
// mounted views by one position, snaps the track to the equivalent offset, and
// then animates the normal one-slide step.
//
// # Example
//
//	reg := swiper.NewRegistry()
//	for _, card := range cards {
//	    reg.Append(card.Slide, card.Mount, card)
//	}
//	c, err := swiper.New(swiper.DefaultConfig(), reg, track)
//	if err != nil {
//	    return err
//	}
//	if err := c.Init(ctx, swiper.MeasureHints(reg.Hints(), 1024, 1024)); err != nil {
//	    return err
//	}
//	_ = c.SlideNext(ctx)
package swiper
