// Package thumbnail turns an element screenshot into a fixed-size, opaque logo.
//
// The source is flattened onto white, scaled down (never up) to fit the target size
// while preserving its aspect ratio, and centered on a white canvas of exactly the
// target size. The result has no transparent pixels, so it encodes as plain RGB.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// MaxSourcePixels is the largest source image (width × height) that Normalize will decode.
// Larger images are rejected from their header alone, before any pixel memory is allocated.
const MaxSourcePixels = 32 << 20

// Normalize decodes raw image bytes (PNG, JPEG, GIF, WebP, BMP or TIFF) and returns
// an opaque image of exactly target.Width × target.Height, with the source centered.
// It is a pure function and is safe for concurrent use.
func Normalize(raw []byte, target Size) (*image.NRGBA, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w (%d bytes): %w", ErrDecode, len(raw), err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, fmt.Errorf("%w (%d bytes): %dx%d is larger than %d pixels",
			ErrDecode, len(raw), cfg.Width, cfg.Height, MaxSourcePixels)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w (%d bytes): %w", ErrDecode, len(raw), err)
	}
	return NormalizeImage(img, target)
}

// NormalizeImage is like [Normalize], for an image that has already been decoded.
func NormalizeImage(img image.Image, target Size) (*image.NRGBA, error) {
	if _, err := NewSize(target.Width, target.Height); err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateImage, b.Dx(), b.Dy())
	}

	flat := flatten(img)

	w, h := fitSize(b.Dx(), b.Dy(), target.Width, target.Height)
	scaled := flat
	if w != b.Dx() || h != b.Dy() {
		scaled = imaging.Resize(flat, w, h, imaging.Lanczos)
	}

	// Overlay rather than Paste: resampling may leave alpha a hair under 255 at the
	// edges, and blending onto the opaque canvas keeps every output pixel opaque.
	canvas := imaging.New(target.Width, target.Height, color.White)
	offset := image.Pt((target.Width-w)/2, (target.Height-h)/2)
	return imaging.Overlay(canvas, scaled, offset, 1.0), nil
}

// flatten composites img over opaque white if it has any transparency,
// and otherwise just converts it to NRGBA.
func flatten(img image.Image) *image.NRGBA {
	if !hasAlpha(img) {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	background := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}

// hasAlpha reports whether the image’s color model can carry transparency.
// Paletted images count only when some palette entry is not fully opaque.
func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64,
		*image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	}
	// Unknown implementations: ask the model.
	_, _, _, a := img.ColorModel().Convert(color.Transparent).RGBA()
	return a == 0
}

// fitSize returns the largest size with the source’s aspect ratio that fits within
// maxW × maxH. Sources that already fit are returned unchanged.
// Each fractional side is rounded to whichever neighbour best preserves the aspect
// ratio, and never below 1px.
func fitSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}

	aspect := float64(srcW) / float64(srcH)
	if float64(maxW)/float64(maxH) >= aspect {
		// Height is the limiting dimension.
		w := roundAspect(float64(maxH)*aspect, func(n float64) float64 {
			return math.Abs(aspect - n/float64(maxH))
		})
		return w, maxH
	}

	h := roundAspect(float64(maxW)/aspect, func(n float64) float64 {
		if n == 0 {
			return 0
		}
		return math.Abs(aspect - float64(maxW)/n)
	})
	return maxW, h
}

func roundAspect(n float64, distance func(float64) float64) int {
	lo, hi := math.Floor(n), math.Ceil(n)
	best := lo
	if distance(hi) < distance(lo) {
		best = hi
	}
	return max(int(best), 1)
}
