package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/swiper/pkg/observability"
)

const testDeck = `
title = "Test"
loop = true

[[slides]]
visible = true

[[slides]]
visible = true

[[slides]]

[[slides]]
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(WithInstant(true)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%s %s: decode body: %v", method, path, err)
		}
	}
	return resp, out
}

func create(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, body := do(t, ts, http.MethodPost, "/carousels?viewport=800", testDeck)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %v", resp.StatusCode, body)
	}
	return body["id"].(string)
}

func state(body map[string]any) map[string]any {
	return body["state"].(map[string]any)
}

func mounted(body map[string]any) []string {
	raw := body["mounted"].([]any)
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = v.(string)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	ts := newTestServer(t)
	id := create(t, ts)

	resp, body := do(t, ts, http.MethodGet, "/carousels/"+id, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	st := state(body)
	if st["slidesPerView"].(float64) != 2 || st["width"].(float64) != 400 {
		t.Errorf("state = %v", st)
	}
	if st["index"].(float64) != 0 || st["loop"] != true {
		t.Errorf("state = %v", st)
	}
	if body["title"] != "Test" {
		t.Errorf("title = %v", body["title"])
	}
	if got := mounted(body); strings.Join(got, ",") != "slide-1,slide-2,slide-3,slide-4" {
		t.Errorf("mounted = %v", got)
	}
}

func TestNextPrevLoop(t *testing.T) {
	ts := newTestServer(t)
	id := create(t, ts)

	_, body := do(t, ts, http.MethodPost, "/carousels/"+id+"/next", "")
	if got := state(body)["index"].(float64); got != 1 {
		t.Fatalf("index after next = %v, want 1", got)
	}
	if body["offset"].(float64) != 400 {
		t.Errorf("offset = %v, want 400", body["offset"])
	}

	do(t, ts, http.MethodPost, "/carousels/"+id+"/next", "")
	_, body = do(t, ts, http.MethodPost, "/carousels/"+id+"/next", "")
	if got := state(body)["index"].(float64); got != 2 {
		t.Errorf("index after looping next = %v, want 2", got)
	}
	if got := mounted(body); got[0] != "slide-2" || got[3] != "slide-1" {
		t.Errorf("mounted after forward rotation = %v", got)
	}
}

func TestPrevAtStartRotates(t *testing.T) {
	ts := newTestServer(t)
	id := create(t, ts)

	_, body := do(t, ts, http.MethodPost, "/carousels/"+id+"/prev", "")
	if got := state(body)["index"].(float64); got != 0 {
		t.Errorf("index = %v, want 0", got)
	}
	if got := mounted(body); got[0] != "slide-4" {
		t.Errorf("mounted = %v, want slide-4 first", got)
	}
	if body["running"] != false {
		t.Error("gate still held after prev")
	}
}

func TestSlideTo(t *testing.T) {
	ts := newTestServer(t)
	id := create(t, ts)

	_, body := do(t, ts, http.MethodPost, "/carousels/"+id+"/to/9", "")
	if got := state(body)["index"].(float64); got != 2 {
		t.Errorf("index = %v, want clamped 2", got)
	}

	resp, _ := do(t, ts, http.MethodPost, "/carousels/"+id+"/to/abc", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResize(t *testing.T) {
	ts := newTestServer(t)
	id := create(t, ts)

	resp, body := do(t, ts, http.MethodPost, "/carousels/"+id+"/resize", `{"viewport": 1300, "container": 1300}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if got := state(body)["width"].(float64); got != 650 {
		t.Errorf("width = %v, want 650", got)
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"viewport":`},
		{name: "unknown field", body: `{"height": 10}`},
		{name: "negative", body: `{"viewport": -1, "container": 10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, ts, http.MethodPost, "/carousels/"+id+"/resize", tt.body)
			if resp.StatusCode != http.StatusBadRequest || body["code"] != "INVALID_INPUT" {
				t.Errorf("status = %d, body = %v", resp.StatusCode, body)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{name: "bad deck", method: http.MethodPost, path: "/carousels", body: "loop = true", status: 400, code: "INVALID_DECK"},
		{name: "bad width", method: http.MethodPost, path: "/carousels?viewport=wide", body: testDeck, status: 400, code: "INVALID_INPUT"},
		{name: "bad id", method: http.MethodGet, path: "/carousels/nope", status: 400, code: "INVALID_INPUT"},
		{name: "unknown id", method: http.MethodGet, path: "/carousels/5f0c7c1e-3a51-4f6e-9d1a-2b8f0e9a6c11", status: 404, code: "NOT_FOUND"},
		{name: "unknown next", method: http.MethodPost, path: "/carousels/5f0c7c1e-3a51-4f6e-9d1a-2b8f0e9a6c11/next", status: 404, code: "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, ts, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.status || body["code"] != tt.code {
				t.Errorf("status = %d, body = %v; want %d %s", resp.StatusCode, body, tt.status, tt.code)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t)
	id := create(t, ts)

	resp, _ := do(t, ts, http.MethodDelete, "/carousels/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	resp, _ = do(t, ts, http.MethodGet, "/carousels/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", resp.StatusCode)
	}
	resp, _ = do(t, ts, http.MethodDelete, "/carousels/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestVersion(t *testing.T) {
	ts := newTestServer(t)
	resp, body := do(t, ts, http.MethodGet, "/version", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, ok := body["version"]; !ok {
		t.Errorf("body = %v, want version field", body)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	responses []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, method+" "+path+" "+http.StatusText(status))
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	id := create(t, ts)
	do(t, ts, http.MethodPost, "/carousels/"+id+"/next", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := "POST /carousels/{id}/next OK"
	for _, got := range hooks.responses {
		if got == want {
			return
		}
	}
	t.Errorf("responses = %v, want %q", hooks.responses, want)
}

func TestAnimatedTransitionBlocks(t *testing.T) {
	srv := New(WithFrameRate(500))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	deck := "duration = \"30ms\"\n" + testDeck
	resp, body := do(t, ts, http.MethodPost, "/carousels?viewport=800", deck)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	id := body["id"].(string)

	start := time.Now()
	_, body = do(t, ts, http.MethodPost, "/carousels/"+id+"/next", "")
	if time.Since(start) < 30*time.Millisecond {
		t.Errorf("next returned before the animation finished")
	}
	if body["offset"].(float64) != 400 || body["running"] != false {
		t.Errorf("body = %v", body)
	}
	if srv.store.len() != 1 {
		t.Errorf("store holds %d sessions, want 1", srv.store.len())
	}
}
