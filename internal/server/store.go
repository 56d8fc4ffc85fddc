package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/swiper/pkg/deck"
	"github.com/matzehuels/swiper/pkg/swiper"
	"github.com/matzehuels/swiper/pkg/track"
)

// session is one hosted carousel.
type session struct {
	id       uuid.UUID
	deck     *deck.Deck
	carousel *swiper.Carousel
	track    *track.Animated
	mounts   []*deck.Mount
	created  time.Time
}

// mounted returns the card IDs in container order.
func (s *session) mounted() []string {
	out := make([]string, 0, len(s.mounts))
	for _, m := range s.mounts {
		if c := m.Card(); c != nil {
			out = append(out, c.ID)
		}
	}
	return out
}

// store holds sessions keyed by id.
type store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func newStore() *store {
	return &store{sessions: make(map[uuid.UUID]*session)}
}

func (s *store) put(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

func (s *store) get(id uuid.UUID) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *store) delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
