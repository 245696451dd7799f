package game_object

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the per-object transform uniform.
// Size: 64 bytes.
type GPUObjectUniform struct {
	Model [16]float32 // offset 0: column-major model matrix
}

// Size returns the size of the GPUObjectUniform struct in bytes.
func (u *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (u *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 64)
	for i, f := range u.Model {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(f))
	}
	return buf
}
