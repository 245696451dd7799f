package model

import "github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that packs vertices and indices into the model's GPU
// buffers and computes its bounding radius.
//
// Parameters:
//   - vertices: the mesh vertices
//   - indices: triangle list indices into vertices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(vertices []GPUVertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalVertices(vertices)
		m.indexData = MarshalIndices(indices)
		m.indexCount = len(indices)
		m.boundingRadius = boundingRadius(vertices)
	}
}

// WithMaterial is an option builder that sets the material the Model is drawn with.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.material = mat
	}
}
