// Package histogram computes normalized grayscale intensity histograms of screenshots.
package histogram

import (
	"image"
	"image/color"
)

// Bins is the number of intensity buckets (one per 8-bit luminance value).
const Bins = 256

// Features is the image descriptor of one screenshot: a probability distribution
// over luminance buckets. All zeros for an image without pixels.
type Features struct {
	Histogram []float64
}

// Compute builds the luminance histogram of img.
// Each pixel maps to bucket int(0.299*R + 0.587*G + 0.114*B) on 8-bit non-premultiplied
// channels, clamped at 255; buckets are divided by the pixel count.
func Compute(img image.Image) Features {
	hist := make([]float64, Bins)
	b := img.Bounds()
	pixels := b.Dx() * b.Dy()
	if pixels <= 0 {
		return Features{Histogram: hist}
	}

	counts := make([]int, Bins)
	switch src := img.(type) {
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				// RGBA is premultiplied; route through NRGBA to undo alpha.
				c := color.NRGBAModel.Convert(src.RGBAAt(x, y)).(color.NRGBA)
				counts[bucket(c.R, c.G, c.B)]++
			}
		}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := src.NRGBAAt(x, y)
				counts[bucket(c.R, c.G, c.B)]++
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				counts[bucket(c.R, c.G, c.B)]++
			}
		}
	}

	n := float64(pixels)
	for i, c := range counts {
		hist[i] = float64(c) / n
	}
	return Features{Histogram: hist}
}

// Luminance returns the bucket index of an 8-bit RGB triple.
func Luminance(r, g, b uint8) int { return bucket(r, g, b) }

func bucket(r, g, b uint8) int {
	// Explicit float64 conversions keep each product rounded, so no FMA fusion changes buckets across platforms.
	gray := float64(float64(r)*0.299) + float64(float64(g)*0.587) + float64(float64(b)*0.114)
	idx := int(gray)
	if idx > Bins-1 {
		idx = Bins - 1
	}
	return idx
}
