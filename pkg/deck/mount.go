package deck

import (
	"sync"

	"github.com/matzehuels/swiper/pkg/swiper"
)

// Card is the view rendered for one slide.
type Card struct {
	ID    string
	Title string
	Body  string
}

// Mount is an in-memory swiper.Container holding at most one Card.
type Mount struct {
	mu   sync.Mutex
	card *Card
}

// Detach implements swiper.Container.
func (m *Mount) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.card = nil
}

// Insert implements swiper.Container. Views that are not cards are ignored.
func (m *Mount) Insert(v swiper.View) {
	card, _ := v.(*Card)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.card = card
}

// Card returns the mounted card, or nil while detached.
func (m *Mount) Card() *Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.card
}

// Register appends every slide of d to reg, in deck order, and returns the
// mounts in slot order.
func (d *Deck) Register(reg *swiper.Registry) []*Mount {
	mounts := make([]*Mount, len(d.Slides))
	for i, s := range d.Slides {
		mounts[i] = &Mount{}
		card := &Card{ID: s.ID, Title: s.Title, Body: s.Body}
		reg.Append(swiper.Slide{ID: s.ID, Hint: s.Hint()}, mounts[i], card)
	}
	return mounts
}
