package swiper

// Geometry is the visual sizing a Track applies to its slides.
type Geometry struct {
	// SlideWidth is the rendered width of every slide, already reduced by
	// the spacing compensation.
	SlideWidth float64 `json:"slideWidth"`

	// TrackWidth is wide enough to hold every slide side by side.
	TrackWidth float64 `json:"trackWidth"`

	// SpaceBetween is the gap between two adjacent slides.
	SpaceBetween float64 `json:"spaceBetween"`
}

// Measurement is what a host reports after the first render.
type Measurement struct {
	// ContainerWidth is the width of the element clipping the track.
	ContainerWidth float64

	// RenderedWidths holds the measured width of each slide, in mounted
	// order. Slides hidden by the host's own responsive rules report 0.
	RenderedWidths []float64
}

// MeasureHints simulates a first render for hosts without a layout engine of
// their own: visible slides share the container equally, hidden ones get 0.
func MeasureHints(hints []Hint, viewportWidth, containerWidth float64) Measurement {
	widths := make([]float64, len(hints))
	visible := 0
	for _, h := range hints {
		if h.VisibleAt(viewportWidth) {
			visible++
		}
	}
	for i, h := range hints {
		if h.VisibleAt(viewportWidth) {
			widths[i] = containerWidth / float64(visible)
		}
	}
	return Measurement{ContainerWidth: containerWidth, RenderedWidths: widths}
}

// InitialSlidesPerView counts the slides that were actually laid out.
// It deliberately ignores the breakpoint table so first paint matches what
// the host rendered.
func InitialSlidesPerView(renderedWidths []float64) int {
	n := 0
	for _, w := range renderedWidths {
		if w > 0 {
			n++
		}
	}
	return n
}

// SlideWidth divides the container between slidesPerView slides.
// A slidesPerView below 1 is treated as 1.
func SlideWidth(containerWidth float64, slidesPerView int) float64 {
	return containerWidth / float64(atLeastOne(slidesPerView))
}

// TrackWidth is the width needed to place n slides side by side.
func TrackWidth(slideWidth float64, n int) float64 {
	return slideWidth * float64(n)
}

// Compensation is the width removed from every slide so that slidesPerView
// slides plus their gaps exactly fill the container.
func Compensation(spaceBetween float64, slidesPerView int) float64 {
	spv := atLeastOne(slidesPerView)
	miss := spaceBetween * float64(spv-1)
	return miss / float64(spv)
}

// RenderedWidth is the visual width of one slide after compensation.
func RenderedWidth(width, spaceBetween float64, slidesPerView int) float64 {
	return width - Compensation(spaceBetween, slidesPerView)
}

// Offset is the horizontal translate that brings the slide at index to the
// left edge of the container.
func Offset(width, spaceBetween float64, slidesPerView, index int) float64 {
	i := float64(index)
	return width*i + (spaceBetween/float64(atLeastOne(slidesPerView)))*i
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
