package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity returns a 4x4 identity matrix in column-major order.
//
// Returns:
//   - [16]float32: the identity matrix
func Identity() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SliceToBytes reinterprets a slice of plain values as bytes for GPU buffer uploads.
// The returned slice shares memory with data and must not outlive it.
//
// Parameters:
//   - data: source slice of any fixed-size type
//
// Returns:
//   - []byte: byte view of data, or nil if data is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}

// Mul4 stores a * b in out. All matrices are column-major; out may alias a or b.
//
// Parameters:
//   - out: destination slice (at least 16 elements)
//   - a: left-hand matrix
//   - b: right-hand matrix
func Mul4(out, a, b []float32) {
	var res [16]float32
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[k*4+row] * b[col*4+k]
			}
			res[col*4+row] = sum
		}
	}
	copy(out, res[:])
}

// Perspective writes a right-handed perspective projection mapping depth to WebGPU's [0, 1] range.
//
// Parameters:
//   - out: destination slice (at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport width / height
//   - near: near plane distance (> 0)
//   - far: far plane distance (> near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1 / math32.Tan(fovY/2)
	id := Identity()
	copy(out, id[:])

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = near * far / (near - far)
	out[15] = 0
}

// BuildModelMatrix writes translation * Ry * Rx * Rz * scale into out (column-major).
//
// Parameters:
//   - out: destination slice (at least 16 elements)
//   - pos: translation in world space
//   - rot: Euler angles in radians around x, y and z
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, pos, rot, scale [3]float32) {
	sx, cx := math32.Sincos(rot[0])
	sy, cy := math32.Sincos(rot[1])
	sz, cz := math32.Sincos(rot[2])

	out[0] = (cy*cz + sy*sx*sz) * scale[0]
	out[1] = cx * sz * scale[0]
	out[2] = (cy*sx*sz - sy*cz) * scale[0]
	out[3] = 0

	out[4] = (sy*sx*cz - cy*sz) * scale[1]
	out[5] = cx * cz * scale[1]
	out[6] = (sy*sz + cy*sx*cz) * scale[1]
	out[7] = 0

	out[8] = sy * cx * scale[2]
	out[9] = -sx * scale[2]
	out[10] = cy * cx * scale[2]
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}

// LookAt writes a view matrix for an eye at eye looking at center.
//
// Parameters:
//   - out: destination slice (at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: the point looked at
//   - upX, upY, upZ: world up vector
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z := Normalize3([3]float32{eyeX - centerX, eyeY - centerY, eyeZ - centerZ})
	x := Normalize3([3]float32{
		upY*z[2] - upZ*z[1],
		upZ*z[0] - upX*z[2],
		upX*z[1] - upY*z[0],
	})
	y := [3]float32{
		z[1]*x[2] - z[2]*x[1],
		z[2]*x[0] - z[0]*x[2],
		z[0]*x[1] - z[1]*x[0],
	}
	eye := [3]float32{eyeX, eyeY, eyeZ}

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
