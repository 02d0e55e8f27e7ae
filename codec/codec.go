// Package codec encodes rendered frames as PNG.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/echoflaresat/mooncam/flat"
	"github.com/echoflaresat/mooncam/options"
)

// Signature is the 8-byte header every PNG stream starts with.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Encode returns img as a PNG stream.
func Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("codec: nil image")
	}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: encode %v: %w", img.Bounds(), err)
	}
	return buf.Bytes(), nil
}

// MustEncode encodes img, falling back to EncodeFlat(size) if that fails.
func MustEncode(img image.Image, size options.Size) []byte {
	if data, err := Encode(img); err == nil {
		return data
	}
	return EncodeFlat(size)
}

// EncodeFlat encodes the flat disk at size. If even that fails, including a
// size too large to allocate, it encodes a single black pixel, and past that
// returns the bare signature, so the result is never empty.
func EncodeFlat(size options.Size) []byte {
	if data, err := encodeDisk(size); err == nil {
		return data
	}
	if data, err := Encode(image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		return data
	}
	return bytes.Clone(Signature)
}

func encodeDisk(size options.Size) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data, err = nil, fmt.Errorf("codec: flat render %v: %v", size, rec)
		}
	}()
	return Encode(flat.Render(size))
}

// HasSignature reports whether data starts with the PNG signature.
func HasSignature(data []byte) bool {
	return bytes.HasPrefix(data, Signature)
}
