// Package assets loads artwork from the local filesystem, the offline
// counterpart to fetching album art over HTTP.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

// LoadArtwork decodes a local image file (png, jpeg or webp).
func LoadArtwork(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artwork %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode artwork %q: %w", path, err)
	}
	return img, nil
}
