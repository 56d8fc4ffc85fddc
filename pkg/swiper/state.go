package swiper

import "slices"

// State is an immutable snapshot of a carousel.
type State struct {
	Width         float64     `json:"width"`
	Index         int         `json:"index"`
	Nodes         []Slide     `json:"nodes"`
	Breakpoints   Breakpoints `json:"breakpoints"`
	SlidesPerView int         `json:"slidesPerView"`
	SpaceBetween  float64     `json:"spaceBetween"`
	Loop          bool        `json:"loop"`
	TrackWidth    float64     `json:"trackWidth"`
}

// Offset is the track translate that shows the current index.
func (s State) Offset() float64 {
	return s.offsetAt(s.Index)
}

// Geometry is the sizing a Track should apply for this state.
func (s State) Geometry() Geometry {
	return Geometry{
		SlideWidth:   RenderedWidth(s.Width, s.SpaceBetween, s.SlidesPerView),
		TrackWidth:   s.TrackWidth,
		SpaceBetween: s.SpaceBetween,
	}
}

// AtStart reports whether a previous step would cross the start.
func (s State) AtStart() bool {
	return s.Index == 0
}

// AtEnd reports whether a next step would cross the end.
func (s State) AtEnd() bool {
	return s.Index+s.SlidesPerView >= len(s.Nodes)
}

func (s State) offsetAt(index int) float64 {
	return Offset(s.Width, s.SpaceBetween, s.SlidesPerView, index)
}

func (s State) clone() State {
	s.Nodes = slices.Clone(s.Nodes)
	return s
}

// setSlidesPerView stores n (at least 1) and re-derives the effective loop
// flag: looping needs at least slidesPerView slides.
func (s *State) setSlidesPerView(n int, wantLoop bool) {
	s.SlidesPerView = atLeastOne(n)
	s.Loop = wantLoop && len(s.Nodes) >= s.SlidesPerView
}

// clampIndex keeps index + slidesPerView within the node count.
func (s *State) clampIndex() {
	limit := len(s.Nodes) - s.SlidesPerView
	if s.Index > limit {
		s.Index = limit
	}
	if s.Index < 0 {
		s.Index = 0
	}
}
