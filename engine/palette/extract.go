package palette

import (
	"errors"
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/belisario-afk/dwdw-sub001/engine/colors"
)

const (
	sampleWidth  = 256 // downsample target width
	sampleStride = 16  // every 16th pixel of the downsampled grid
	kmeansIters  = 10
)

// ErrNoSamples reports an image too small to yield any pixels to cluster.
var ErrNoSamples = errors.New("palette: image yielded no samples")

// FromImage quantizes img into k representative colors. The result is
// deterministic for identical pixel data: centroid seeding strides through the
// sample list at a fixed offset instead of using randomness.
//
// Dominant is the first centroid in clustering order (an arrival-order pick,
// not the largest cluster — kept for compatibility). Secondary is the middle
// element of a lightness-sorted copy, a perceptual mid-tone.
func FromImage(img image.Image, k int) (Palette, error) {
	if k <= 0 {
		k = DefaultK
	}

	samples := samplePixels(downsample(img))
	if len(samples) == 0 {
		return Palette{}, ErrNoSamples
	}

	centroids := kmeans(samples, k)

	out := make([]colors.Color, k)
	for i, c := range centroids {
		out[i] = colors.Color{float32(c[0]), float32(c[1]), float32(c[2]), 1}
	}

	byLight := make([]colors.Color, k)
	copy(byLight, out)
	sort.SliceStable(byLight, func(i, j int) bool {
		return lightness(byLight[i]) < lightness(byLight[j])
	})

	return Palette{
		Dominant:  out[0],
		Secondary: byLight[k/2],
		Colors:    out,
	}, nil
}

// downsample scales to a fixed width preserving aspect ratio.
func downsample(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	outH := h * sampleWidth / w
	if outH < 1 {
		outH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, sampleWidth, outH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// samplePixels walks the grid row-major taking every sampleStride-th pixel.
func samplePixels(img *image.RGBA) [][3]float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	samples := make([][3]float64, 0, total/sampleStride+1)
	for i := 0; i < total; i += sampleStride {
		x := b.Min.X + i%b.Dx()
		y := b.Min.Y + i/b.Dx()
		o := img.PixOffset(x, y)
		samples = append(samples, [3]float64{
			float64(img.Pix[o]) / 255,
			float64(img.Pix[o+1]) / 255,
			float64(img.Pix[o+2]) / 255,
		})
	}
	return samples
}

// kmeans runs a fixed number of Lloyd iterations with deterministic seeding.
func kmeans(samples [][3]float64, k int) [][3]float64 {
	centroids := make([][3]float64, k)
	// Seed by striding through the sample list; indexes repeat when there are
	// fewer samples than clusters, which still converges.
	stride := len(samples) / k
	if stride < 1 {
		stride = 1
	}
	for i := range centroids {
		centroids[i] = samples[(i*stride)%len(samples)]
	}

	sums := make([][3]float64, k)
	counts := make([]int, k)
	for iter := 0; iter < kmeansIters; iter++ {
		for i := range sums {
			sums[i] = [3]float64{}
			counts[i] = 0
		}
		for _, s := range samples {
			best, bestD := 0, dist2(s, centroids[0])
			for c := 1; c < k; c++ {
				if d := dist2(s, centroids[c]); d < bestD {
					best, bestD = c, d
				}
			}
			sums[best][0] += s[0]
			sums[best][1] += s[1]
			sums[best][2] += s[2]
			counts[best]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // empty cluster keeps its centroid
			}
			n := float64(counts[c])
			centroids[c] = [3]float64{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
		}
	}
	return centroids
}

func dist2(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

// lightness is the perceptual L channel (Lab) used for the mid-tone pick.
func lightness(c colors.Color) float64 {
	l, _, _ := colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Lab()
	return l
}
