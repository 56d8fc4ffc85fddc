// Package deck loads carousel decks from TOML files.
//
// A deck carries the carousel options and the ordered list of slides:
//
//	space_between = 16
//	loop = true
//	duration = "600ms"
//
//	[breakpoints]
//	xl = 4
//
//	[[slides]]
//	title = "Welcome"
//	body = "Use the arrow keys."
//	visible = true
//
//	[[slides]]
//	title = "Wide screens only"
//	tier = "md"
//
// Decks also know how to mount themselves into a swiper.Registry, giving
// every slide a Card view and a Mount container.
package deck

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/swiper"
)

// Deck is a parsed deck file.
type Deck struct {
	Title        string         `toml:"title"`
	SpaceBetween float64        `toml:"space_between"`
	Loop         bool           `toml:"loop"`
	Autoplay     duration       `toml:"autoplay"`
	Duration     *duration      `toml:"duration"`
	Breakpoints  map[string]int `toml:"breakpoints"`
	Slides       []SlideSpec    `toml:"slides"`
}

// SlideSpec declares one slide.
type SlideSpec struct {
	ID      string      `toml:"id"`
	Title   string      `toml:"title"`
	Body    string      `toml:"body"`
	Tier    swiper.Tier `toml:"tier"`
	Visible bool        `toml:"visible"`
}

// duration accepts "600ms"-style strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads and parses a deck file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "deck %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read deck %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates deck TOML. Unknown keys are rejected.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDeck, err, "decode deck")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidDeck, "unknown keys: %s", strings.Join(keys, ", "))
	}

	d.fillIDs()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the deck for problems the carousel would reject.
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return errors.New(errors.ErrCodeInvalidDeck, "deck has no slides")
	}
	seen := make(map[string]bool, len(d.Slides))
	for i, s := range d.Slides {
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidDeck, "slide %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	if _, err := d.Config(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDeck, err, "deck options")
	}
	return nil
}

// Config converts the deck options into a carousel config.
func (d *Deck) Config() (swiper.Config, error) {
	cfg := swiper.DefaultConfig()
	cfg.SpaceBetween = d.SpaceBetween
	cfg.Loop = d.Loop
	cfg.Autoplay = d.Autoplay.Duration
	if d.Duration != nil {
		cfg.Duration = d.Duration.Duration
	}

	if len(d.Breakpoints) > 0 {
		cfg.Breakpoints = make(map[swiper.Tier]int, len(d.Breakpoints))
		for name, n := range d.Breakpoints {
			t, err := swiper.ParseTier(name)
			if err != nil {
				return swiper.Config{}, err
			}
			cfg.Breakpoints[t] = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return swiper.Config{}, err
	}
	return cfg, nil
}

// Hints returns the slide hints in deck order.
func (d *Deck) Hints() []swiper.Hint {
	out := make([]swiper.Hint, len(d.Slides))
	for i, s := range d.Slides {
		out[i] = s.Hint()
	}
	return out
}

// Hint returns the breakpoint hint declared by the slide.
func (s SlideSpec) Hint() swiper.Hint {
	return swiper.Hint{Visible: s.Visible, Tier: s.Tier}
}

func (d *Deck) fillIDs() {
	for i := range d.Slides {
		if d.Slides[i].ID == "" {
			d.Slides[i].ID = fmt.Sprintf("slide-%d", i+1)
		}
	}
}
