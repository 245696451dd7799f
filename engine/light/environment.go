package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/lucasb-eyer/go-colorful"
)

// Environment is the lighting and background derived from an HDRI preset.
// All colors are linear RGB.
type Environment struct {
	// Sky is the background clear color after blur and intensity are applied.
	Sky [3]float32
	// Ambient is the uniform fill light added to every fragment.
	Ambient [3]float32

	SunDirection [3]float32
	SunColor     [3]float32
	SunIntensity float32
}

// preset describes an environment in display (sRGB hex) colors.
type preset struct {
	sky          string
	ambient      string
	ambientScale float32
	sunDirection [3]float32
	sun          string
	sunIntensity float32
}

var presets = map[settings.HDRI]preset{
	settings.HDRISunset:    {"#f4a46a", "#6b4a5e", 0.35, [3]float32{-1, -0.25, -0.4}, "#ffb37a", 2.2},
	settings.HDRIDawn:      {"#c9b8d9", "#5b5f7d", 0.35, [3]float32{0.8, -0.35, -0.5}, "#ffd2b0", 1.8},
	settings.HDRINight:     {"#0b1026", "#1b2340", 0.25, [3]float32{0.3, -0.8, 0.4}, "#9fb4ff", 0.4},
	settings.HDRIWarehouse: {"#8a8379", "#5e5850", 0.45, [3]float32{0.2, -1, 0.3}, "#fff1dc", 1.5},
	settings.HDRIForest:    {"#7f9f74", "#3c5236", 0.4, [3]float32{-0.4, -0.9, 0.2}, "#f3ffd9", 1.6},
	settings.HDRIApartment: {"#d8cbb8", "#7a6d5f", 0.5, [3]float32{0.6, -0.7, 0.2}, "#fff0d6", 1.4},
	settings.HDRIStudio:    {"#d9d9d9", "#808080", 0.6, [3]float32{0.3, -1, 0.5}, "#ffffff", 2.0},
	settings.HDRICity:      {"#9fb6cc", "#55606b", 0.45, [3]float32{-0.5, -0.8, -0.3}, "#f0f4ff", 1.8},
}

// EnvironmentFor resolves the background panel into an Environment. Unknown presets fall
// back to Sunset. Blur pulls the sky toward its own luminance and BackgroundIntensity
// scales it; neither touches the sun or the ambient term.
//
// Parameters:
//   - bg: the background panel values
//
// Returns:
//   - Environment: the resolved lighting
func EnvironmentFor(bg settings.Background) Environment {
	p, ok := presets[bg.HDRI]
	if !ok {
		p = presets[settings.HDRISunset]
	}

	sky := desaturate(settings.MustParseColor(p.sky), bg.Blur)
	intensity := max(bg.BackgroundIntensity, 0)
	for i := range sky {
		sky[i] *= intensity
	}

	ambient := settings.MustParseColor(p.ambient)
	for i := range ambient {
		ambient[i] *= p.ambientScale
	}

	return Environment{
		Sky:          sky,
		Ambient:      ambient,
		SunDirection: common.Normalize3(p.sunDirection),
		SunColor:     settings.MustParseColor(p.sun),
		SunIntensity: p.sunIntensity,
	}
}

// ApplyTo copies the environment's sun onto a directional light.
//
// Parameters:
//   - sun: the light to update
func (e Environment) ApplyTo(sun Light) {
	sun.SetDirection(e.SunDirection[0], e.SunDirection[1], e.SunDirection[2])
	sun.SetColor(e.SunColor[0], e.SunColor[1], e.SunColor[2])
	sun.SetIntensity(e.SunIntensity)
}

// ClearColor returns the sky clamped to the displayable range, ready for a render pass clear.
func (e Environment) ClearColor() (r, g, b float64) {
	return float64(common.Clamp(e.Sky[0], 0, 1)),
		float64(common.Clamp(e.Sky[1], 0, 1)),
		float64(common.Clamp(e.Sky[2], 0, 1))
}

// desaturate blends a linear color toward the grey of equal luminance by amount in [0, 1].
func desaturate(c [3]float32, amount float32) [3]float32 {
	amount = common.Clamp(amount, 0, 1)
	if amount == 0 {
		return c
	}
	lum := float64(0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2])

	src := colorful.LinearRgb(float64(c[0]), float64(c[1]), float64(c[2]))
	grey := colorful.LinearRgb(lum, lum, lum)
	r, g, b := src.BlendRgb(grey, float64(amount)).Clamped().LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}
