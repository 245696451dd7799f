package scene

import "github.com/Carmen-Shannon/oxy-viewer/common"

// DrawCall names the resources one draw uses. All keys refer to resources previously
// registered on the Renderer.
type DrawCall struct {
	// Object is the key of the per-object uniform written with WriteObjectUniform.
	Object string
	// Mesh is the key passed to InitMesh.
	Mesh string
	// NormalTexture is the key passed to InitTexture, or "" for the renderer's flat normal.
	NormalTexture string
	// Transparent selects the alpha-blended pipeline.
	Transparent bool
}

// Renderer is the GPU surface a Scene draws through. The engine owns the frame lifecycle
// (BeginFrame, the scenes' DrawCalls, EndFrame, Present); scenes register resources once in
// Init and write uniforms and draws in between.
type Renderer interface {
	// InitMesh uploads a vertex and index buffer under key.
	//
	// Parameters:
	//   - key: the mesh key
	//   - vertexData: packed vertices
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: error if buffer creation fails
	InitMesh(key string, vertexData, indexData []byte, indexCount int) error

	// InitTexture uploads RGBA texture data under key.
	//
	// Parameters:
	//   - key: the texture key
	//   - tex: the pixels to upload
	//
	// Returns:
	//   - error: error if the texture is invalid or creation fails
	InitTexture(key string, tex common.TextureStagingData) error

	// SetClearColor sets the background color of subsequent frames.
	SetClearColor(r, g, b float64)

	// SetSampleCount requests an MSAA sample count. The renderer may clamp it to what the
	// adapter supports; changes take effect on the next frame.
	SetSampleCount(count int)

	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int)

	// WriteFrameUniform replaces the per-frame uniform block.
	WriteFrameUniform(data []byte)

	// WriteObjectUniform replaces an object's uniform block, creating it on first write.
	//
	// Parameters:
	//   - key: the object key
	//   - data: the packed uniform
	//
	// Returns:
	//   - error: error if the buffer cannot be created
	WriteObjectUniform(key string, data []byte) error

	// BeginFrame acquires the next surface texture and opens the render pass.
	BeginFrame() error

	// Draw records one indexed draw into the open render pass.
	Draw(call DrawCall) error

	// EndFrame closes the render pass and submits the recorded commands.
	EndFrame()

	// Present displays the frame.
	Present()
}

// FrameRegistrar receives the per-frame callbacks of a scene. Callbacks run once per rendered
// frame in registration order.
type FrameRegistrar interface {
	OnFrame(name string, fn func(dt float32))
}
