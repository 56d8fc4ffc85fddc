package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/swiper/pkg/buildinfo"
	"github.com/matzehuels/swiper/pkg/deck"
	"github.com/matzehuels/swiper/pkg/errors"
	"github.com/matzehuels/swiper/pkg/swiper"
	"github.com/matzehuels/swiper/pkg/track"
)

// carouselView is the JSON form of a hosted carousel.
type carouselView struct {
	ID       string          `json:"id"`
	Title    string          `json:"title,omitempty"`
	Created  time.Time       `json:"created"`
	State    swiper.State    `json:"state"`
	Geometry swiper.Geometry `json:"geometry"`
	Offset   float64         `json:"offset"`
	Mounted  []string        `json:"mounted"`
	Running  bool            `json:"running"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	viewport, err := floatParam(r, "viewport", DefaultWidth)
	if err != nil {
		writeError(w, err)
		return
	}
	container, err := floatParam(r, "container", viewport)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDeckBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read deck body"))
		return
	}
	d, err := deck.Parse(data)
	if err != nil {
		writeError(w, err)
		return
	}

	sess, err := s.open(r.Context(), d, viewport, container)
	if err != nil {
		writeError(w, err)
		return
	}
	s.store.put(sess)
	s.logger.Info("carousel created", "id", sess.id, "slides", len(d.Slides))

	writeJSON(w, http.StatusCreated, view(sess))
}

// open builds, mounts and initializes a carousel for d.
func (s *Server) open(ctx context.Context, d *deck.Deck, viewport, container float64) (*session, error) {
	cfg, err := d.Config()
	if err != nil {
		return nil, err
	}
	if s.instant {
		cfg.Duration = 0
	}

	reg := swiper.NewRegistry()
	mounts := d.Register(reg)
	tr := track.New(track.WithFrameRate(s.frameRate))

	id := uuid.New()
	c, err := swiper.New(cfg, reg, tr, swiper.WithLogger(s.logger.With("carousel", id.String()[:8])))
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx, swiper.MeasureHints(reg.Hints(), viewport, container)); err != nil {
		return nil, err
	}

	return &session{
		id:       id,
		deck:     d,
		carousel: c,
		track:    tr,
		mounts:   mounts,
		created:  time.Now().UTC(),
	}, nil
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(sess))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !s.store.delete(id) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "carousel %s", id))
		return
	}
	s.logger.Info("carousel deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(ctx context.Context, c *swiper.Carousel) error {
		return c.SlideNext(ctx)
	})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(ctx context.Context, c *swiper.Carousel) error {
		return c.SlidePrev(ctx)
	})
}

func (s *Server) handleSlideTo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "index"))
		return
	}
	s.transition(w, r, func(ctx context.Context, c *swiper.Carousel) error {
		return c.SlideTo(ctx, index)
	})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var ev swiper.ResizeEvent
	dec := json.NewDecoder(io.LimitReader(r.Body, maxDeckBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode resize event"))
		return
	}
	if ev.ViewportWidth < 0 || ev.ContainerWidth < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "widths must be >= 0"))
		return
	}

	if err := sess.carousel.Resize(r.Context(), ev); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(sess))
}

// transition runs fn to completion even if the client goes away, so the
// carousel never keeps an uncommitted move.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, *swiper.Carousel) error) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := fn(context.WithoutCancel(r.Context()), sess.carousel); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(sess))
}

func (s *Server) lookup(r *http.Request) (*session, error) {
	id, err := parseID(r)
	if err != nil {
		return nil, err
	}
	sess, ok := s.store.get(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "carousel %s", id)
	}
	return sess, nil
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "carousel id")
	}
	return id, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative number, got %q", name, raw)
	}
	return v, nil
}

func view(sess *session) carouselView {
	st := sess.carousel.State()
	return carouselView{
		ID:       sess.id.String(),
		Title:    sess.deck.Title,
		Created:  sess.created,
		State:    st,
		Geometry: st.Geometry(),
		Offset:   sess.track.Offset(),
		Mounted:  sess.mounted(),
		Running:  sess.carousel.Running(),
	}
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidTier, errors.ErrCodeInvalidDeck:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNotInitialized:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
