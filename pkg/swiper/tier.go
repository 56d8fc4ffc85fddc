package swiper

import (
	"strings"

	"github.com/matzehuels/swiper/pkg/errors"
)

// Tier is a viewport-width band, ordered from narrowest to widest.
type Tier int

// Viewport tiers.
const (
	TierZero Tier = iota
	TierSM
	TierMD
	TierLG
	TierXL
)

const numTiers = 5

var (
	tierNames      = [numTiers]string{"0", "sm", "md", "lg", "xl"}
	tierThresholds = [numTiers]float64{0, 640, 768, 1024, 1280}
)

// Tiers returns every tier in ascending order.
func Tiers() []Tier {
	return []Tier{TierZero, TierSM, TierMD, TierLG, TierXL}
}

// Valid reports whether t is one of the five defined tiers.
func (t Tier) Valid() bool {
	return t >= TierZero && t <= TierXL
}

// Threshold is the minimum viewport width, in px, at which t applies.
func (t Tier) Threshold() float64 {
	if !t.Valid() {
		return 0
	}
	return tierThresholds[t]
}

func (t Tier) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return tierNames[t]
}

// ParseTier parses a tier name ("0", "zero", "sm", "md", "lg", "xl").
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "zero" || name == "" {
		return TierZero, nil
	}
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return TierZero, errors.New(errors.ErrCodeInvalidTier, "unknown tier %q (want one of 0, sm, md, lg, xl)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidTier, "tier %d out of range", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
