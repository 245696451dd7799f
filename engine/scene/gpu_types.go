package scene

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// GPUFrameUniformSource is the WGSL definition of the FrameUniform and DrawUniform structs.
// It references the camera, light, object and material structs, so it must be concatenated
// after their sources (see UniformSources).
//
//go:embed assets/frame_uniform.wgsl
var GPUFrameUniformSource string

// UniformSources returns every uniform struct definition the lit shader binds, in dependency order.
func UniformSources() string {
	return camera.GPUCameraUniformSource + "\n" +
		light.GPULightUniformSource + "\n" +
		game_object.GPUObjectUniformSource + "\n" +
		material.GPUMaterialUniformSource + "\n" +
		GPUFrameUniformSource
}

// GPUFrameUniform is bound once per frame: camera, lighting and output transform.
// Size: 144 bytes.
type GPUFrameUniform struct {
	Camera      camera.GPUCameraUniform // offset   0 (80 bytes)
	Light       light.GPULightUniform   // offset  80 (48 bytes)
	ToneMapping uint32                  // offset 128: index into settings.ToneMappings
	Exposure    float32                 // offset 132
	// 8 bytes of padding to a 16-byte multiple
}

// Size returns the size of the GPUFrameUniform block in bytes (144).
func (g *GPUFrameUniform) Size() int {
	return 144
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	copy(buf[0:80], g.Camera.Marshal())
	copy(buf[80:128], g.Light.Marshal())
	binary.LittleEndian.PutUint32(buf[128:132], g.ToneMapping)
	binary.LittleEndian.PutUint32(buf[132:136], math.Float32bits(g.Exposure))
	return buf
}

// GPUDrawUniform is bound per draw: the object's transform and its material.
// Size: 144 bytes.
type GPUDrawUniform struct {
	Object   game_object.GPUObjectUniform // offset  0 (64 bytes)
	Material material.GPUMaterialUniform  // offset 64 (80 bytes)
}

// Size returns the size of the GPUDrawUniform block in bytes (144).
func (g *GPUDrawUniform) Size() int {
	return 144
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	copy(buf[0:64], g.Object.Marshal())
	copy(buf[64:144], g.Material.Marshal())
	return buf
}
