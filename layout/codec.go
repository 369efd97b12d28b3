package layout

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"
)

// Byte sizes of the wire types.
const (
	ScalarSize = 4
	Vec2Size   = 8
	Vec3Size   = 12
	Vec4Size   = 16
	Mat4Size   = 64
)

// PutFloat32 writes v as little-endian binary32 at buf[0:4].
func PutFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

// Float32 reads a little-endian binary32 from buf[0:4].
func Float32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

// PutInt32 writes v as a little-endian two's complement integer.
func PutInt32(buf []byte, v int32) {
	binary.LittleEndian.PutUint32(buf, uint32(v))
}

// Int32 reads a little-endian two's complement integer.
func Int32(buf []byte) int32 {
	return int32(binary.LittleEndian.Uint32(buf))
}

// PutVec2 writes v into buf[0:8].
func PutVec2(buf []byte, v f32.Vec2) {
	PutFloat32(buf[0:4], v[0])
	PutFloat32(buf[4:8], v[1])
}

// Vec2 reads buf[0:8].
func Vec2(buf []byte) f32.Vec2 {
	return f32.Vec2{Float32(buf[0:4]), Float32(buf[4:8])}
}

// PutVec3 writes v into buf[0:12]. The caller owns the fourth lane of a
// 16-byte slot.
func PutVec3(buf []byte, v f32.Vec3) {
	PutFloat32(buf[0:4], v[0])
	PutFloat32(buf[4:8], v[1])
	PutFloat32(buf[8:12], v[2])
}

// Vec3 reads buf[0:12].
func Vec3(buf []byte) f32.Vec3 {
	return f32.Vec3{Float32(buf[0:4]), Float32(buf[4:8]), Float32(buf[8:12])}
}

// PutVec4 writes v into buf[0:16].
func PutVec4(buf []byte, v f32.Vec4) {
	for i := range 4 {
		PutFloat32(buf[i*4:], v[i])
	}
}

// Vec4 reads buf[0:16].
func Vec4(buf []byte) f32.Vec4 {
	var v f32.Vec4
	for i := range 4 {
		v[i] = Float32(buf[i*4:])
	}
	return v
}

// PutMat4 writes m into buf[0:64] in column-major order.
//
// f32.Mat4 is row-major in memory (m[row*4+col]); the shader reads four
// column vectors, so element (row, col) lands at float index col*4+row.
func PutMat4(buf []byte, m *f32.Mat4) {
	for col := range 4 {
		for row := range 4 {
			PutFloat32(buf[(col*4+row)*4:], m[row*4+col])
		}
	}
}

// Mat4 reads a column-major matrix from buf[0:64].
func Mat4(buf []byte) f32.Mat4 {
	var m f32.Mat4
	for col := range 4 {
		for row := range 4 {
			m[row*4+col] = Float32(buf[(col*4+row)*4:])
		}
	}
	return m
}

// Zero clears buf. Used for reserved spans.
func Zero(buf []byte) {
	clear(buf)
}

// Mat4Finite reports whether every element of m is finite.
func Mat4Finite(m *f32.Mat4) bool {
	return AllFinite(m[:]...)
}
