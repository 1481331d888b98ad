package palette

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // album art decoders
	_ "image/png"
	"net/http"
	"sync/atomic"
	"time"

	_ "golang.org/x/image/webp"
)

// Requester fetches artwork and extracts palettes off the render thread.
// Overlapping requests are resolved by a monotonically increasing generation:
// only the most recently issued request may apply its result, so a slow early
// extraction can never clobber a newer one.
type Requester struct {
	Client *http.Client
	K      int

	gen atomic.Uint64
}

func NewRequester() *Requester {
	return &Requester{
		Client: &http.Client{Timeout: 15 * time.Second},
		K:      DefaultK,
	}
}

// Extract fetches and quantizes synchronously. Failures reject the call with
// no retry; the caller supplies a fallback palette.
func (r *Requester) Extract(ctx context.Context, url string) (Palette, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Palette{}, fmt.Errorf("palette request %q: %w", url, err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return Palette{}, fmt.Errorf("fetch artwork %q: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Palette{}, fmt.Errorf("fetch artwork %q: status %s", url, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return Palette{}, fmt.Errorf("decode artwork %q: %w", url, err)
	}
	return FromImage(img, r.K)
}

// RequestLatest runs Extract on a detached goroutine. apply (or fail) is
// invoked only if no newer request was issued in the meantime; stale results
// are discarded. Both callbacks run on the fetch goroutine — hosts hand the
// palette back to the render thread themselves.
func (r *Requester) RequestLatest(ctx context.Context, url string, apply func(Palette), fail func(error)) {
	gen := r.gen.Add(1)
	go func() {
		p, err := r.Extract(ctx, url)
		if r.gen.Load() != gen {
			return // superseded
		}
		if err != nil {
			if fail != nil {
				fail(err)
			}
			return
		}
		if apply != nil {
			apply(p)
		}
	}()
}
