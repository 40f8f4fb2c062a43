package common

import (
	"math"
	"unsafe"
)

// Mat3 is a 3x3 matrix stored flat in column-major order (WebGPU convention).
// Element (row r, column c) lives at index c*3+r.
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
//
// Returns:
//   - Mat3: identity matrix
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mul3 multiplies two 3x3 matrices. All matrices are column-major.
// Result: a * b
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Mat3: product matrix
func Mul3(a, b Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ { // column of B
		for j := 0; j < 3; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 3; k++ {
				sum += a[k*3+j] * b[i*3+k]
			}
			out[i*3+j] = sum
		}
	}
	return out
}

// Translation2 creates a 3x3 matrix translating 2D homogeneous points by (x, y).
//
// Parameters:
//   - x, y: translation in world space
//
// Returns:
//   - Mat3: translation matrix
func Translation2(x, y float32) Mat3 {
	out := Identity3()
	out[6] = x
	out[7] = y
	return out
}

// Scale2 creates a 3x3 matrix scaling 2D points by (x, y).
//
// Parameters:
//   - x, y: scale factors along each axis
//
// Returns:
//   - Mat3: scale matrix
func Scale2(x, y float32) Mat3 {
	var out Mat3
	out[0] = x
	out[4] = y
	out[8] = 1
	return out
}

// Rotation2 creates a 3x3 matrix rotating 2D points counter-clockwise by the
// given angle.
//
// Parameters:
//   - angle: rotation in radians
//
// Returns:
//   - Mat3: rotation matrix
func Rotation2(angle float32) Mat3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	out := Identity3()
	out[0] = c
	out[1] = s
	out[3] = -s
	out[4] = c
	return out
}

// BuildSpriteTransform constructs the world transform for a unit quad:
// scale to (w, h), rotate about the quad's center, then translate to (x, y).
//
// Parameters:
//   - x, y: translation in world space
//   - w, h: sprite extents in world units
//   - angle: rotation in radians about the sprite center
//
// Returns:
//   - Mat3: composed transform
func BuildSpriteTransform(x, y, w, h, angle float32) Mat3 {
	m := Mul3(Scale2(w, h), Translation2(-0.5, -0.5))
	m = Mul3(Rotation2(angle), m)
	m = Mul3(Translation2(x+w/2, y+h/2), m)
	return m
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
