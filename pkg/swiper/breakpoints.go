package swiper

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Hint is the declarative size configuration carried by a slide.
//
// A slide with a non-zero Tier is tagged: it becomes visible from that tier
// upward, and Visible is ignored. An untagged slide counts toward the
// narrowest tier only when Visible is set.
type Hint struct {
	Visible bool `json:"visible,omitempty"`
	Tier    Tier `json:"tier,omitempty"`
}

// Tagged reports whether the hint names a tier above TierZero.
func (h Hint) Tagged() bool {
	return h.Tier != TierZero
}

// VisibleAt reports whether a slide with this hint is laid out at the given
// viewport width.
func (h Hint) VisibleAt(viewportWidth float64) bool {
	if h.Tagged() {
		return h.Tier.Valid() && viewportWidth >= h.Tier.Threshold()
	}
	return h.Visible
}

// Breakpoints maps every tier to its slides-per-view count.
// A zero count marks the tier inactive.
type Breakpoints [numTiers]int

// ResolveBreakpoints folds per-slide hints, in registration order, into a
// breakpoint table.
//
// Untagged visible slides increment the TierZero counter. A tagged slide
// increments its tier's counter when that counter is already populated;
// otherwise the counter is seeded once from the nearest populated lower tier
// plus one. With no populated lower tier the counter stays zero until a later
// slide sets it.
func ResolveBreakpoints(hints []Hint) Breakpoints {
	var bp Breakpoints
	for _, h := range hints {
		switch {
		case h.Tagged():
			t := h.Tier
			if !t.Valid() {
				continue
			}
			if bp[t] != 0 {
				bp[t]++
				continue
			}
			for lower := t - 1; lower >= TierZero; lower-- {
				if bp[lower] != 0 {
					bp[t] = bp[lower] + 1
					break
				}
			}
		case h.Visible:
			bp[TierZero]++
		}
	}
	return bp
}

// Count returns the slides-per-view count declared for t.
func (b Breakpoints) Count(t Tier) int {
	if !t.Valid() {
		return 0
	}
	return b[t]
}

// Active scans tiers from widest to narrowest and returns the first tier
// with a non-zero count whose threshold is at most viewportWidth.
func (b Breakpoints) Active(viewportWidth float64) (Tier, int, bool) {
	for t := TierXL; t >= TierZero; t-- {
		if b[t] != 0 && viewportWidth >= t.Threshold() {
			return t, b[t], true
		}
	}
	return TierZero, 0, false
}

// Merge returns a copy of b with explicit per-tier counts applied.
// Invalid tiers and negative counts are skipped.
func (b Breakpoints) Merge(overrides map[Tier]int) Breakpoints {
	out := b
	for t, n := range overrides {
		if !t.Valid() || n < 0 {
			continue
		}
		out[t] = n
	}
	return out
}

// Map returns the table keyed by tier name.
func (b Breakpoints) Map() map[string]int {
	m := make(map[string]int, numTiers)
	for _, t := range Tiers() {
		m[t.String()] = b[t]
	}
	return m
}

// MarshalJSON encodes the table as an object keyed by tier name.
func (b Breakpoints) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Map())
}

func (b Breakpoints) String() string {
	parts := make([]string, 0, numTiers)
	for _, t := range Tiers() {
		parts = append(parts, fmt.Sprintf("%s:%d", t, b[t]))
	}
	return strings.Join(parts, " ")
}
