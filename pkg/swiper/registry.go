package swiper

import (
	"slices"
	"sync"
)

// View is an opaque handle to rendered slide content owned by the host.
type View any

// Container is a fixed mount point in the track. It holds at most one View.
type Container interface {
	// Detach removes the currently mounted view without destroying it.
	Detach()

	// Insert mounts v at this container's position.
	Insert(v View)
}

// Slide is the declaration a slide was registered with.
type Slide struct {
	ID   string `json:"id"`
	Hint Hint   `json:"hint"`
}

// Slot is the stable token returned by Registry.Append. It addresses a
// container position, which never changes; the view mounted there does.
type Slot int

// Record pairs a container position with the slide currently mounted there.
type Record struct {
	Slot      Slot
	Slide     Slide
	Container Container
	View      View
}

// Direction selects which way a loop rotation moves the mounted views.
type Direction int

const (
	// Left rotates the sequence right by one: the last view mounts first.
	// Used when moving backward past the start.
	Left Direction = iota

	// Right rotates the sequence left by one: the first view mounts last.
	// Used when moving forward past the end.
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Registry is the ordered, append-only collection of slide slots.
// Its order is the source of truth for mount order.
type Registry struct {
	mu      sync.Mutex
	records []Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Append registers a slide, the container it was declared in and the view
// rendered for it. The view is inserted into the container.
func (r *Registry) Append(slide Slide, c Container, v View) Slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := Slot(len(r.records))
	c.Insert(v)
	r.records = append(r.records, Record{Slot: slot, Slide: slide, Container: c, View: v})
	return slot
}

// Len returns the number of registered slots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Records returns a copy of the registry in mount order.
func (r *Registry) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.records)
}

// Record returns the record at slot s.
func (r *Registry) Record(s Slot) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s < 0 || int(s) >= len(r.records) {
		return Record{}, false
	}
	return r.records[s], true
}

// Slides returns the mounted slide declarations in mount order.
func (r *Registry) Slides() []Slide {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Slide, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Slide
	}
	return out
}

// Views returns the mounted views in mount order.
func (r *Registry) Views() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]View, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.View
	}
	return out
}

// Hints returns the hints of the mounted slides in mount order.
func (r *Registry) Hints() []Hint {
	slides := r.Slides()
	out := make([]Hint, len(slides))
	for i, s := range slides {
		out[i] = s.Hint
	}
	return out
}

// Rotate re-mounts every view one position over. All containers are
// detached before any insert, and the call returns only once all n views
// are mounted again, each exactly once.
func (r *Registry) Rotate(dir Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.records)
	if n == 0 {
		return
	}

	type mounted struct {
		slide Slide
		view  View
	}
	next := make([]mounted, n)
	for i := range r.records {
		var src int
		if dir == Left {
			src = (i - 1 + n) % n
		} else {
			src = (i + 1) % n
		}
		next[i] = mounted{slide: r.records[src].Slide, view: r.records[src].View}
	}

	for _, rec := range r.records {
		rec.Container.Detach()
	}
	for i := range r.records {
		r.records[i].Container.Insert(next[i].view)
		r.records[i].Slide = next[i].slide
		r.records[i].View = next[i].view
	}
}
