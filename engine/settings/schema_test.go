package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatParam_Clamp(t *testing.T) {
	speed := FloatParam{Key: "speed", Default: 0.005, Min: 0, Max: 0.03, Step: 0.001}

	assert.InDelta(t, 0.012, float64(speed.Clamp(0.0123)), 1e-6)
	assert.Equal(t, float32(0), speed.Clamp(-1))
	assert.InDelta(t, 0.03, float64(speed.Clamp(1)), 1e-6)

	fov := FloatParam{Key: "fov", Default: 50, Min: 5, Max: 110, Step: 1}
	assert.Equal(t, float32(73), fov.Clamp(72.6))
	assert.Equal(t, float32(110), fov.Clamp(500))

	free := FloatParam{Key: "free", Min: -1, Max: 1}
	assert.Equal(t, float32(0.123), free.Clamp(0.123))
}

func TestLookup(t *testing.T) {
	p, err := Lookup(PanelGround, "useNormalMap")
	require.NoError(t, err)
	assert.Equal(t, KindBool, p.Kind)

	_, err = Lookup("lights", "color")
	assert.ErrorIs(t, err, ErrUnknownPanel)

	_, err = Lookup(PanelBox, "wobble")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestParam_Apply(t *testing.T) {
	s := Default()

	metalness, err := Lookup(PanelBox, "metalness")
	require.NoError(t, err)
	require.NoError(t, metalness.Apply(&s, 0.7))
	assert.InDelta(t, 0.7, float64(s.Box.Metalness), 1e-6)
	require.NoError(t, metalness.Apply(&s, json.Number("0.25")))
	assert.InDelta(t, 0.25, float64(s.Box.Metalness), 1e-6)
	assert.ErrorIs(t, metalness.Apply(&s, "shiny"), ErrInvalidValue)

	hdri, err := Lookup(PanelBackground, "hdri")
	require.NoError(t, err)
	require.NoError(t, hdri.Apply(&s, "Night"))
	assert.Equal(t, HDRINight, s.Background.HDRI)
	require.NoError(t, hdri.Apply(&s, HDRICity))
	assert.Equal(t, HDRICity, s.Background.HDRI)
	assert.ErrorIs(t, hdri.Apply(&s, "Moon"), ErrInvalidValue)

	color, err := Lookup(PanelGround, "specularColor")
	require.NoError(t, err)
	require.NoError(t, color.Apply(&s, " #00ff00 "))
	assert.Equal(t, "#00ff00", s.Ground.SpecularColor)
	assert.ErrorIs(t, color.Apply(&s, "#zzzzzz"), ErrInvalidValue)

	reset, err := Lookup(PanelCamera, ActionResetTarget)
	require.NoError(t, err)
	assert.Equal(t, KindAction, reset.Kind)
	assert.ErrorIs(t, reset.Apply(&s, true), ErrInvalidValue)
}

func TestSchema_IsACopy(t *testing.T) {
	a := Schema()
	a[0].Params[0].Key = "changed"

	b := Schema()
	assert.Equal(t, "color", b[0].Params[0].Key)
}

func TestSchema_MarshalsForClients(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)

	var panels []map[string]any
	require.NoError(t, json.Unmarshal(data, &panels))
	require.Len(t, panels, 5)
	assert.Equal(t, PanelBox, panels[0]["name"])
	assert.Contains(t, string(data), `"options":["Linear","Reinhard","Uncharted2","Cineon","ACESFilmic","AgX","Neutral"]`)
}
