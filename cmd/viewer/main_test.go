package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNormalMap(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, color.NRGBA{R: 100, G: 150, B: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "normal.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadNormalMapDecodesAndCaches(t *testing.T) {
	l := loader.NewLoader()
	tex := loadNormalMap(l, writeNormalMap(t))

	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.Equal(t, []byte{100, 150, 255, 255}, tex.Pixels[:4])

	cached, ok := l.Get(scene.GroundNormalTexture)
	require.True(t, ok, "decoded texture is cached under the ground key")
	assert.Equal(t, tex, cached)
}

func TestLoadNormalMapMissingFileIsFlat(t *testing.T) {
	tex := loadNormalMap(loader.NewLoader(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Equal(t, common.FlatNormalTexture(), tex)
}
