package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCarouselHooks{}
	c.OnInit(ctx, 4, 2, 320)
	c.OnResize(ctx, 1024, 3, 213.3)
	c.OnTransitionStart(ctx, "next", 0, 1)
	c.OnTransitionComplete(ctx, "next", 1, time.Second, nil)
	c.OnRotate(ctx, "left", 4)
	c.OnDropped(ctx, "prev")

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/carousels")
	h.OnResponse(ctx, "POST", "/carousels", 201, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Carousel().(NoopCarouselHooks); !ok {
		t.Error("Carousel() should return NoopCarouselHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCarousel := &testCarouselHooks{}
	SetCarouselHooks(customCarousel)
	if Carousel() != customCarousel {
		t.Error("SetCarouselHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Carousel().(NoopCarouselHooks); !ok {
		t.Error("Reset() should restore NoopCarouselHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCarouselHooks{}
	SetCarouselHooks(custom)

	SetCarouselHooks(nil)

	if Carousel() != custom {
		t.Error("SetCarouselHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCarouselHooks struct{ NoopCarouselHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
