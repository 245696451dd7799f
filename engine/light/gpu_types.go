package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (48 bytes, uniform aligned).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the scene lighting: one directional
// sun plus an ambient term.
// Size: 48 bytes.
type GPULightUniform struct {
	SunDirection [3]float32 // offset  0
	SunIntensity float32    // offset 12
	SunColor     [3]float32 // offset 16
	_pad0        float32    // offset 28
	Ambient      [3]float32 // offset 32
	_pad1        float32    // offset 44
}

// NewGPULightUniform packs a sun and an ambient color. A disabled sun is packed with
// zero intensity.
//
// Parameters:
//   - sun: the directional light
//   - ambient: linear RGB ambient color
//
// Returns:
//   - GPULightUniform: the packed uniform
func NewGPULightUniform(sun Light, ambient [3]float32) GPULightUniform {
	u := GPULightUniform{
		SunDirection: sun.Direction(),
		SunColor:     sun.Color(),
		Ambient:      ambient,
	}
	if sun.Enabled() {
		u.SunIntensity = sun.Intensity()
	}
	return u
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (u *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (u *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 48)
	putVec3(buf[0:12], u.SunDirection)
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(u.SunIntensity))
	putVec3(buf[16:28], u.SunColor)
	putVec3(buf[32:44], u.Ambient)
	return buf
}

func putVec3(buf []byte, v [3]float32) {
	for i, c := range v {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(c))
	}
}
