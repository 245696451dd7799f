package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTextureStagingData_Valid(t *testing.T) {
	assert.True(t, FlatNormalTexture().Valid())
	assert.False(t, TextureStagingData{}.Valid())
	assert.False(t, TextureStagingData{Pixels: make([]byte, 4), Width: 2, Height: 1}.Valid())
	assert.True(t, TextureStagingData{Pixels: make([]byte, 8), Width: 2, Height: 1}.Valid())
}

func TestFlatNormalTexture(t *testing.T) {
	tex := FlatNormalTexture()
	assert.Equal(t, []byte{128, 128, 255, 255}, tex.Pixels)
}

func TestDecodeImage(t *testing.T) {
	tex, err := DecodeImage(bytes.NewReader(encodePNG(t)))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(1), tex.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, tex.Pixels)
	assert.True(t, tex.Valid())
}

func TestDecodeImage_Invalid(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("not an image"))
	assert.Error(t, err)
}

func TestDecodeImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "normal.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t), 0o644))

	tex, err := DecodeImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tex.Width)

	_, err = DecodeImageFile(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "missing.png")
}
