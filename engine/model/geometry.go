package model

// face describes one quad of a generated mesh: its outward normal and the two in-plane axes
// with u x v = normal, so the corner order below winds counter-clockwise seen from outside.
type face struct {
	normal [3]float32
	u, v   [3]float32
}

var boxFaces = [6]face{
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// corner signs along u and v, counter-clockwise.
var quadCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// BuildBox generates an axis-aligned box centered on the origin with flat per-face normals.
// Each face maps the full [0, 1] UV square; texture v grows downward across the face.
//
// Parameters:
//   - width: extent along x
//   - height: extent along y
//   - depth: extent along z
//
// Returns:
//   - []GPUVertex: 24 vertices, four per face
//   - []uint32: 36 triangle list indices
func BuildBox(width, height, depth float32) ([]GPUVertex, []uint32) {
	half := [3]float32{width / 2, height / 2, depth / 2}
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range boxFaces {
		vertices, indices = appendQuad(vertices, indices, f, half)
	}
	return vertices, indices
}

// BuildPlane generates a flat ground plane in the XZ plane at y = 0 facing +Y.
//
// Parameters:
//   - width: extent along x
//   - depth: extent along z
//
// Returns:
//   - []GPUVertex: 4 vertices
//   - []uint32: 6 triangle list indices
func BuildPlane(width, depth float32) ([]GPUVertex, []uint32) {
	up := face{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}}
	return appendQuad(nil, nil, up, [3]float32{width / 2, 0, depth / 2})
}

// appendQuad emits one face. The tangent follows u; its w of 1 makes cross(normal, tangent)
// point along v, the image "up" direction of GL-convention normal maps.
func appendQuad(vertices []GPUVertex, indices []uint32, f face, half [3]float32) ([]GPUVertex, []uint32) {
	base := uint32(len(vertices))
	for _, c := range quadCorners {
		var pos [3]float32
		for i := range 3 {
			pos[i] = (f.normal[i] + f.u[i]*c[0] + f.v[i]*c[1]) * half[i]
		}
		vertices = append(vertices, GPUVertex{
			Position: pos,
			Normal:   f.normal,
			TexCoord: [2]float32{(c[0] + 1) / 2, (1 - c[1]) / 2},
			Color:    [4]float32{1, 1, 1, 1},
			Tangent:  [4]float32{f.u[0], f.u[1], f.u[2], 1},
		})
	}
	indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	return vertices, indices
}
