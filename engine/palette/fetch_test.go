package palette

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func pngHandler(t *testing.T, delay time.Duration, w, h int) http.HandlerFunc {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradientImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	data := buf.Bytes()
	return func(rw http.ResponseWriter, _ *http.Request) {
		time.Sleep(delay)
		rw.Header().Set("Content-Type", "image/png")
		rw.Write(data)
	}
}

func TestExtractFromServer(t *testing.T) {
	srv := httptest.NewServer(pngHandler(t, 0, 32, 32))
	defer srv.Close()

	r := NewRequester()
	p, err := r.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(p.Colors) != DefaultK {
		t.Fatalf("got %d colors, want %d", len(p.Colors), DefaultK)
	}
}

func TestExtractRejectsOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(rw http.ResponseWriter, _ *http.Request) {
			http.Error(rw, "gone", http.StatusNotFound)
		}},
		{"not an image", func(rw http.ResponseWriter, _ *http.Request) {
			rw.Write([]byte("<html>definitely not pixels</html>"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			r := NewRequester()
			if _, err := r.Extract(context.Background(), srv.URL); err == nil {
				t.Fatal("Extract succeeded, want error")
			}
		})
	}
}

func TestRequestLatestDiscardsStaleResult(t *testing.T) {
	slow := httptest.NewServer(pngHandler(t, 150*time.Millisecond, 16, 16))
	defer slow.Close()
	fast := httptest.NewServer(pngHandler(t, 0, 32, 32))
	defer fast.Close()

	r := NewRequester()

	var mu sync.Mutex
	var applied []Palette
	done := make(chan struct{}, 2)
	apply := func(p Palette) {
		mu.Lock()
		applied = append(applied, p)
		mu.Unlock()
		done <- struct{}{}
	}

	// Older slow request, then a newer fast one. Only the newer may apply.
	r.RequestLatest(context.Background(), slow.URL, apply, nil)
	r.RequestLatest(context.Background(), fast.URL, apply, nil)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("no extraction completed")
	}
	// Give the stale request time to (incorrectly) apply.
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 1 {
		t.Fatalf("%d palettes applied, want 1 (stale result must be discarded)", len(applied))
	}
}
