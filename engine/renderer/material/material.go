package material

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
)

// material is the implementation of the Material interface.
type material struct {
	name string

	baseColor          [4]float32
	metallic           float32
	roughness          float32
	clearcoat          float32
	clearcoatRoughness float32
	iridescence        float32
	iridescenceIOR     float32
	transmission       float32
	ior                float32
	specularIntensity  float32
	specularColor      [3]float32
	transparent        bool

	normalTexture string
	useNormalMap  bool
	normalRepeat  float32
	uvOffset      [2]float32
}

// Material defines a physically based surface: the properties a settings panel edits plus
// the normal map placement.
//
// Colors are stored in linear RGB. The base color's alpha is the panel's opacity.
// Materials are mutated on the render goroutine only.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the linear RGBA color of the material. Alpha is the opacity.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Transparent reports whether the material is drawn with alpha blending.
	//
	// Returns:
	//   - bool: true if the opacity is below one or transparency was requested
	Transparent() bool

	// NormalTexture retrieves the texture key of the normal map, or "" if none is bound.
	//
	// Returns:
	//   - string: the texture key
	NormalTexture() string

	// UVOffset retrieves the normal map offset in UV units.
	UVOffset() [2]float32

	// SetPhysical copies a panel's physical properties onto the material.
	// Colors that fail to parse are treated as black.
	//
	// Parameters:
	//   - p: the panel values
	SetPhysical(p settings.Physical)

	// SetNormalMap configures normal mapping.
	//
	// Parameters:
	//   - enabled: whether the normal map is sampled
	//   - repeat: how many times the map tiles across the surface
	SetNormalMap(enabled bool, repeat float32)

	// SetUVOffset sets the normal map offset. Each component is wrapped into [0, 1).
	//
	// Parameters:
	//   - u, v: offset in UV units
	SetUVOffset(u, v float32)

	// Uniform packs the material into its GPU layout.
	//
	// Returns:
	//   - GPUMaterialUniform: the packed uniform
	Uniform() GPUMaterialUniform
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Without options the material is an opaque white dielectric.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:         [4]float32{1, 1, 1, 1},
		metallic:          0.0,
		roughness:         1.0,
		iridescenceIOR:    1.3,
		ior:               1.5,
		specularIntensity: 1,
		specularColor:     [3]float32{1, 1, 1},
		normalRepeat:      1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) NormalTexture() string {
	return m.normalTexture
}

func (m *material) UVOffset() [2]float32 {
	return m.uvOffset
}

func (m *material) SetPhysical(p settings.Physical) {
	c := settings.MustParseColor(p.Color)
	m.baseColor = [4]float32{c[0], c[1], c[2], common.Clamp(p.Opacity, 0, 1)}
	m.metallic = p.Metalness
	m.roughness = p.Roughness
	m.clearcoat = p.Clearcoat
	m.clearcoatRoughness = p.ClearcoatRoughness
	m.iridescence = p.Iridescence
	m.iridescenceIOR = p.IridescenceIOR
	m.transmission = p.Transmission
	m.ior = p.IOR
	m.specularIntensity = p.SpecularIntensity
	m.specularColor = settings.MustParseColor(p.SpecularColor)
	m.transparent = p.IsTransparent()
}

func (m *material) SetNormalMap(enabled bool, repeat float32) {
	m.useNormalMap = enabled
	m.normalRepeat = repeat
}

func (m *material) SetUVOffset(u, v float32) {
	m.uvOffset = [2]float32{common.Wrap01(u), common.Wrap01(v)}
}

func (m *material) Uniform() GPUMaterialUniform {
	u := GPUMaterialUniform{
		BaseColor:          m.baseColor,
		SpecularColor:      m.specularColor,
		SpecularIntensity:  m.specularIntensity,
		Metalness:          m.metallic,
		Roughness:          m.roughness,
		Clearcoat:          m.clearcoat,
		ClearcoatRoughness: m.clearcoatRoughness,
		Iridescence:        m.iridescence,
		IridescenceIOR:     m.iridescenceIOR,
		Transmission:       m.transmission,
		IOR:                m.ior,
		UVOffset:           m.uvOffset,
		NormalRepeat:       m.normalRepeat,
	}
	if m.useNormalMap && m.normalTexture != "" {
		u.UseNormalMap = 1
	}
	return u
}
