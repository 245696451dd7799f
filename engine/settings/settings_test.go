package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_MatchesPanelDefaults(t *testing.T) {
	s := Default()

	assert.Equal(t, "gold", s.Box.Color)
	assert.Equal(t, float32(0.005), s.Box.Speed)
	assert.Equal(t, "#ff0000", s.Ground.Color)
	assert.Equal(t, float32(1.3), s.Ground.IridescenceIOR)
	assert.Equal(t, float32(50), s.Camera.Fov)
	assert.Equal(t, ToneMappingAgX, s.Camera.ToneMapping)
	assert.Equal(t, HDRISunset, s.Background.HDRI)
	assert.Equal(t, AntiAliasingMedium, s.General.AntiAliasing)
	assert.False(t, s.General.ShowStats)
}

func TestDefault_AgreesWithSchema(t *testing.T) {
	s := Default()
	for _, panel := range Schema() {
		for _, p := range panel.Params {
			if p.Kind == KindAction {
				continue
			}
			assert.Equal(t, p.Default, p.Value(s), "%s.%s", panel.Name, p.Key)
		}
	}
}

func TestPhysical_IsTransparent(t *testing.T) {
	p := Default().Box.Physical
	assert.False(t, p.IsTransparent())

	p.Opacity = 0.99
	assert.True(t, p.IsTransparent())

	p.Opacity = 1
	p.Transparent = true
	assert.True(t, p.IsTransparent())
}

func TestAntiAliasing_Samples(t *testing.T) {
	cases := map[AntiAliasing]int{
		AntiAliasingOff:       1,
		AntiAliasingLow:       2,
		AntiAliasingMedium:    4,
		AntiAliasingHigh:      8,
		AntiAliasingVeryHigh:  16,
		AntiAliasing("Ultra"): 4,
	}
	for level, samples := range cases {
		assert.Equal(t, samples, level.Samples(), string(level))
	}
}

func TestToneMapping_Index(t *testing.T) {
	assert.Equal(t, uint32(0), ToneMappingLinear.Index())
	assert.Equal(t, uint32(6), ToneMappingNeutral.Index())
	assert.Equal(t, ToneMappingAgX.Index(), ToneMapping("Filmic").Index())
}

func TestNormalize_RepairsOutOfRangeValues(t *testing.T) {
	s := Default()
	s.Box.Metalness = 3
	s.Camera.Fov = 1
	s.Camera.ToneMapping = "Bogus"
	s.Background.HDRI = ""
	s.Ground.Color = "not-a-color"
	s.General.AntiAliasing = "Max"

	n := Normalize(s)

	assert.Equal(t, float32(1), n.Box.Metalness)
	assert.Equal(t, float32(5), n.Camera.Fov)
	assert.Equal(t, ToneMappingAgX, n.Camera.ToneMapping)
	assert.Equal(t, HDRISunset, n.Background.HDRI)
	assert.Equal(t, "#ff0000", n.Ground.Color)
	assert.Equal(t, AntiAliasingMedium, n.General.AntiAliasing)
}

func TestNormalize_KeepsValidSettings(t *testing.T) {
	assert.Equal(t, Default(), Normalize(Default()))
}
