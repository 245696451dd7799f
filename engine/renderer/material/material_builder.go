package material

import "github.com/Carmen-Shannon/oxy-viewer/engine/settings"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPhysical is an option builder that initializes the material from panel values.
//
// Parameters:
//   - p: the physical properties to copy
//
// Returns:
//   - MaterialBuilderOption: a function that applies the properties to a material
func WithPhysical(p settings.Physical) MaterialBuilderOption {
	return func(m *material) {
		m.SetPhysical(p)
	}
}

// WithNormalTexture is an option builder that binds a normal map by texture key.
// The map is only sampled once normal mapping is enabled with SetNormalMap.
//
// Parameters:
//   - key: the texture key the renderer registered the map under
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal texture option to a material
func WithNormalTexture(key string) MaterialBuilderOption {
	return func(m *material) {
		m.normalTexture = key
	}
}
