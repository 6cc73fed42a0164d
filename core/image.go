package core

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	nativewebp "github.com/HugoSmits86/nativewebp"
)

const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// EncodePNG encodes img as a maximally-compressed PNG.
// Fully opaque images are written as 8-bit truecolor, without an alpha channel.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeWebP encodes img as a lossless WebP.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, &nativewebp.Options{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode encodes img in the named format (“png” or “webp”).
func Encode(img image.Image, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return EncodePNG(img)
	case FormatWebP:
		return EncodeWebP(img)
	default:
		return nil, fmt.Errorf("unsupported image format: %q", format)
	}
}
