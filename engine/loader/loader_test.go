package loader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadTextureDecodesAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "n.png", 4, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	l := NewLoader()

	tex, err := l.LoadTexture("ground", path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.True(t, tex.Valid())
	assert.Equal(t, []byte{10, 20, 30, 255}, tex.Pixels[:4])

	require.NoError(t, os.Remove(path))
	again, err := l.LoadTexture("ground", path)
	require.NoError(t, err, "cached textures do not hit the disk")
	assert.Equal(t, tex, again)
}

func TestLoadTextureMissingFileFallsBack(t *testing.T) {
	l := NewLoader()

	tex, err := l.LoadTexture("ground", filepath.Join(t.TempDir(), "missing.png"))

	require.Error(t, err)
	assert.Equal(t, common.FlatNormalTexture(), tex)
	_, cached := l.Get("ground")
	assert.False(t, cached, "fallbacks are not cached")
}

func TestLoadTextureCustomFallback(t *testing.T) {
	fallback := common.TextureStagingData{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
	l := NewLoader(WithFallback(fallback))

	tex, err := l.LoadTexture("x", filepath.Join(t.TempDir(), "nope.png"))

	require.Error(t, err)
	assert.Equal(t, fallback, tex)
}

func TestWithFallbackIgnoresInvalid(t *testing.T) {
	l := NewLoader(WithFallback(common.TextureStagingData{Width: 2, Height: 2}))

	tex, _ := l.LoadTexture("x", filepath.Join(t.TempDir(), "nope.png"))
	assert.Equal(t, common.FlatNormalTexture(), tex)
}

func TestLoadTexturesConcurrent(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{
		"a":       writePNG(t, dir, "a.png", 2, 2, color.RGBA{R: 255, A: 255}),
		"b":       writePNG(t, dir, "b.png", 3, 1, color.RGBA{G: 255, A: 255}),
		"c":       writePNG(t, dir, "c.png", 1, 1, color.RGBA{B: 255, A: 255}),
		"missing": filepath.Join(dir, "missing.png"),
	}
	l := NewLoader(WithWorkers(2))

	textures, err := l.LoadTextures(paths)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	require.Len(t, textures, 4)
	assert.Equal(t, uint32(3), textures["b"].Width)
	assert.Equal(t, byte(255), textures["c"].Pixels[2])
	assert.Equal(t, common.FlatNormalTexture(), textures["missing"])
	assert.Len(t, l.Textures(), 3)
}

func TestLoadTexturesAllSucceed(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{
		"a": writePNG(t, dir, "a.png", 2, 2, color.RGBA{R: 255, A: 255}),
	}

	textures, err := NewLoader().LoadTextures(paths)

	require.NoError(t, err)
	assert.True(t, textures["a"].Valid())
}

func TestWithTexturePrepopulates(t *testing.T) {
	tex := common.FlatNormalTexture()
	l := NewLoader(WithTexture("flat", tex))

	got, ok := l.Get("flat")
	require.True(t, ok)
	assert.Equal(t, tex, got)

	textures := l.Textures()
	delete(textures, "flat")
	_, ok = l.Get("flat")
	assert.True(t, ok, "Textures returns a copy")
}
