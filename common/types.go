// Package common holds plain data types and math helpers shared by the engine packages.
// Nothing in here is interface-wrapped or touches the GPU.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is tightly packed RGBA, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// Valid reports whether the staging data holds exactly Width*Height RGBA pixels.
func (t TextureStagingData) Valid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width*t.Height*4)
}

// FlatNormalTexture returns a 1x1 tangent-space normal map pointing straight out of the surface.
//
// Returns:
//   - TextureStagingData: a single (128, 128, 255, 255) texel
func FlatNormalTexture() TextureStagingData {
	return TextureStagingData{Pixels: []byte{128, 128, 255, 255}, Width: 1, Height: 1}
}

// DecodeImage decodes a PNG, JPEG, BMP, TIFF or WebP stream into RGBA staging data.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - TextureStagingData: the decoded pixels
//   - error: error if the stream is not a supported image
func DecodeImage(r io.Reader) (TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// DecodeImageFile reads and decodes the image at path. See DecodeImage.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - TextureStagingData: the decoded pixels
//   - error: error if the file cannot be read or decoded
func DecodeImageFile(path string) (TextureStagingData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("read texture %s: %w", path, err)
	}
	tex, err := DecodeImage(bytes.NewReader(data))
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("texture %s: %w", path, err)
	}
	return tex, nil
}
