package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

type model struct {
	name                  string
	material              material.Material
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a GPU-ready mesh: packed vertex and index buffers plus
// the material it is drawn with.
// The renderer registers the buffers under the model's name.
type Model interface {
	// Name retrieves the model identifier, also used as its renderer mesh key.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// VertexData retrieves the packed GPUVertex buffer.
	//
	// Returns:
	//   - []byte: the vertex buffer bytes
	VertexData() []byte

	// IndexData retrieves the packed uint32 index buffer.
	//
	// Returns:
	//   - []byte: the index buffer bytes
	IndexData() []byte

	// IndexCount retrieves the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius retrieves the distance from the model origin to its farthest vertex.
	//
	// Returns:
	//   - float32: the bounding sphere radius
	BoundingRadius() float32

	// Material retrieves the surface the model is drawn with.
	//
	// Returns:
	//   - material.Material: the material, or nil if none was set
	Material() material.Material

	// SetMaterial replaces the model's material.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m material.Material)
}

var _ Model = &model{}

// NewModel creates a new Model instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) SetMaterial(mat material.Material) {
	m.material = mat
}

func boundingRadius(vertices []GPUVertex) float32 {
	var r float32
	for _, v := range vertices {
		r = max(r, common.Length3(v.Position))
	}
	return r
}
