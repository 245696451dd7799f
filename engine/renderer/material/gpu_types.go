package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (80 bytes, uniform aligned).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned uniform for the lit fragment shader.
// Matches the WGSL MaterialUniform struct layout exactly (see GPUMaterialUniformSource).
// Size: 80 bytes.
type GPUMaterialUniform struct {
	BaseColor          [4]float32 // offset  0: linear RGB + opacity
	SpecularColor      [3]float32 // offset 16
	SpecularIntensity  float32    // offset 28
	Metalness          float32    // offset 32
	Roughness          float32    // offset 36
	Clearcoat          float32    // offset 40
	ClearcoatRoughness float32    // offset 44
	Iridescence        float32    // offset 48
	IridescenceIOR     float32    // offset 52
	Transmission       float32    // offset 56
	IOR                float32    // offset 60
	UVOffset           [2]float32 // offset 64
	NormalRepeat       float32    // offset 72
	UseNormalMap       uint32     // offset 76: 1 = sample the normal map
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, 80)
	floats := []float32{
		g.BaseColor[0], g.BaseColor[1], g.BaseColor[2], g.BaseColor[3],
		g.SpecularColor[0], g.SpecularColor[1], g.SpecularColor[2], g.SpecularIntensity,
		g.Metalness, g.Roughness, g.Clearcoat, g.ClearcoatRoughness,
		g.Iridescence, g.IridescenceIOR, g.Transmission, g.IOR,
		g.UVOffset[0], g.UVOffset[1], g.NormalRepeat,
	}
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(f))
	}
	binary.LittleEndian.PutUint32(buf[76:80], g.UseNormalMap)
	return buf
}
