package swiper

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestCompensationFillsContainer(t *testing.T) {
	for _, space := range []float64{0, 1, 7.5, 16, 33.3} {
		for spv := 1; spv <= 8; spv++ {
			width := SlideWidth(1000, spv)
			rendered := RenderedWidth(width, space, spv)

			got := float64(spv)*rendered + float64(spv-1)*space
			want := float64(spv) * width
			if !almostEqual(got, want) {
				t.Errorf("space=%v spv=%d: slides+gaps = %v, want %v", space, spv, got, want)
			}
		}
	}
}

func TestCompensation(t *testing.T) {
	tests := []struct {
		name  string
		space float64
		spv   int
		want  float64
	}{
		{name: "single slide has no gap", space: 20, spv: 1, want: 0},
		{name: "two slides", space: 20, spv: 2, want: 10},
		{name: "four slides", space: 16, spv: 4, want: 12},
		{name: "no spacing", space: 0, spv: 3, want: 0},
		{name: "zero spv guarded", space: 20, spv: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compensation(tt.space, tt.spv); !almostEqual(got, tt.want) {
				t.Errorf("Compensation(%v, %d) = %v, want %v", tt.space, tt.spv, got, tt.want)
			}
		})
	}
}

func TestSlideWidthGuardsZero(t *testing.T) {
	if got := SlideWidth(900, 0); got != 900 {
		t.Errorf("SlideWidth(900, 0) = %v, want 900", got)
	}
	if got := SlideWidth(900, 3); got != 300 {
		t.Errorf("SlideWidth(900, 3) = %v, want 300", got)
	}
	if got := Offset(100, 10, 0, 2); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("Offset() with zero spv = %v, want finite", got)
	}
}

func TestOffset(t *testing.T) {
	// stride is the rendered width plus one gap
	width, space, spv := 250.0, 20.0, 4
	stride := RenderedWidth(width, space, spv) + space

	for i := 0; i < 5; i++ {
		if got, want := Offset(width, space, spv, i), stride*float64(i); !almostEqual(got, want) {
			t.Errorf("Offset(index=%d) = %v, want %v", i, got, want)
		}
	}
}

func TestTrackWidth(t *testing.T) {
	if got := TrackWidth(250, 6); got != 1500 {
		t.Errorf("TrackWidth(250, 6) = %v, want 1500", got)
	}
}

func TestInitialSlidesPerView(t *testing.T) {
	tests := []struct {
		name   string
		widths []float64
		want   int
	}{
		{name: "none", widths: nil, want: 0},
		{name: "all hidden", widths: []float64{0, 0}, want: 0},
		{name: "mixed", widths: []float64{320, 0, 320, 0.5}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialSlidesPerView(tt.widths); got != tt.want {
				t.Errorf("InitialSlidesPerView() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeasureHints(t *testing.T) {
	hints := []Hint{{Visible: true}, {Visible: true}, {Tier: TierMD}, {}}

	m := MeasureHints(hints, 800, 900)
	if m.ContainerWidth != 900 {
		t.Errorf("ContainerWidth = %v, want 900", m.ContainerWidth)
	}
	want := []float64{300, 300, 300, 0}
	for i, w := range want {
		if m.RenderedWidths[i] != w {
			t.Errorf("RenderedWidths[%d] = %v, want %v", i, m.RenderedWidths[i], w)
		}
	}

	m = MeasureHints(hints, 500, 900)
	if got := InitialSlidesPerView(m.RenderedWidths); got != 2 {
		t.Errorf("slides laid out at 500px = %d, want 2", got)
	}
}
