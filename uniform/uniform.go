// Package uniform encodes the per-instance and per-scene uniform blocks.
//
// The two blocks are separate regions so the renderer rewrites only the one
// whose data changed: UniformPerInstance potentially every draw call,
// UniformPerScene at most once per frame.
//
// UniformPerInstance (size 64, stride 64, alignment 16):
//
//	model_matrix      mat4x4<f32>  offset 0
//
// UniformPerScene (size 148, stride 160, alignment 16):
//
//	view_matrix       mat4x4<f32>  offset 0
//	projection_matrix mat4x4<f32>  offset 64
//	camera_position   vec3<f32>    offset 128 (16-byte slot, lane 3 reserved)
//	num_lights        i32          offset 144
//	reserved          i32 x 3      offset 148, 152, 156
//
// Matrices are column-major on the wire.
package uniform

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sdfont/layout"
)

// Record names as declared by the shader.
const (
	InstanceRecordName = "UniformPerInstance"
	SceneRecordName    = "UniformPerScene"
)

// UniformPerInstance layout.
const (
	InstanceSize   = 64
	InstanceStride = 64
	ModelOffset    = 0
)

// UniformPerScene layout.
const (
	SceneSize        = 148
	SceneStride      = 160
	ViewOffset       = 0
	ProjectionOffset = 64
	CameraOffset     = 128
	NumLightsOffset  = 144
)

// Alignment is the alignment of both uniform blocks.
const Alignment = 16

// InstanceRecord describes the UniformPerInstance layout.
var InstanceRecord = layout.Record{
	Name:   InstanceRecordName,
	Size:   InstanceSize,
	Stride: InstanceStride,
	Align:  Alignment,
	Fields: []layout.Field{
		{Name: "model_matrix", Offset: ModelOffset, Size: layout.Mat4Size, Align: 16},
	},
}

// SceneRecord describes the UniformPerScene layout.
var SceneRecord = layout.Record{
	Name:   SceneRecordName,
	Size:   SceneSize,
	Stride: SceneStride,
	Align:  Alignment,
	Fields: []layout.Field{
		{Name: "view_matrix", Offset: ViewOffset, Size: layout.Mat4Size, Align: 16},
		{Name: "projection_matrix", Offset: ProjectionOffset, Size: layout.Mat4Size, Align: 16},
		{Name: "camera_position", Offset: CameraOffset, Size: layout.Vec3Size, Align: 16},
		{Name: "num_lights", Offset: NumLightsOffset, Size: layout.ScalarSize, Align: 4},
	},
	Reserved: []layout.Span{
		{Offset: CameraOffset + layout.Vec3Size, Size: layout.ScalarSize},
		{Offset: 148, Size: 4},
		{Offset: 152, Size: 4},
		{Offset: 156, Size: 4},
	},
}

// Identity returns the 4x4 identity matrix.
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// PerInstance is the local-to-world transform of one drawable instance.
type PerInstance struct {
	Model f32.Mat4
}

// Validate rejects non-finite matrix elements.
func (p PerInstance) Validate() error {
	if !layout.Mat4Finite(&p.Model) {
		return &layout.ConfigError{Record: InstanceRecordName, Field: "model_matrix", Reason: "must be finite"}
	}
	return nil
}

// PerScene is the per-frame camera and lighting state.
type PerScene struct {
	View       f32.Mat4
	Projection f32.Mat4
	Camera     f32.Vec3
	NumLights  int32
}

// DefaultScene returns identity view and projection, a camera at the origin
// and no lights.
func DefaultScene() PerScene {
	return PerScene{View: Identity(), Projection: Identity()}
}

// EncodeInstance returns the 64-byte record for one instance.
func EncodeInstance(model f32.Mat4) [InstanceStride]byte {
	var rec [InstanceStride]byte
	layout.PutMat4(rec[ModelOffset:], &model)
	return rec
}

// DecodeInstance reads one 64-byte record.
func DecodeInstance(rec []byte) (f32.Mat4, error) {
	if err := layout.CheckSize(InstanceRecordName, len(rec), InstanceStride); err != nil {
		return f32.Mat4{}, err
	}
	return layout.Mat4(rec[ModelOffset:]), nil
}

// EncodeInstances serializes instances into a new 16-byte aligned buffer
// with a 64-byte stride.
func EncodeInstances(instances []PerInstance) []byte {
	if len(instances) == 0 {
		return nil
	}
	buf := layout.NewAligned(len(instances) * InstanceStride)
	for i := range instances {
		layout.PutMat4(buf[i*InstanceStride:], &instances[i].Model)
	}
	return buf
}

// WriteInstances validates instances and writes them into buf at offset.
func WriteInstances(buf []byte, offset uint64, instances []PerInstance) error {
	if err := layout.CheckSpan(InstanceRecordName, len(buf), offset, len(instances)*InstanceStride); err != nil {
		return err
	}
	for _, inst := range instances {
		if err := inst.Validate(); err != nil {
			return err
		}
	}
	dst := buf[offset:]
	for i := range instances {
		layout.PutMat4(dst[i*InstanceStride:], &instances[i].Model)
	}
	return nil
}

// putScene writes s into dst[0:SceneStride]. Reserved bytes are zeroed.
func putScene(dst []byte, s *PerScene) {
	layout.PutMat4(dst[ViewOffset:], &s.View)
	layout.PutMat4(dst[ProjectionOffset:], &s.Projection)
	layout.PutVec3(dst[CameraOffset:], s.Camera)
	layout.Zero(dst[CameraOffset+layout.Vec3Size : NumLightsOffset])
	layout.PutInt32(dst[NumLightsOffset:], s.NumLights)
	layout.Zero(dst[SceneSize:SceneStride])
}

// DecodeScene reads one 160-byte record. Reserved bytes are not read.
func DecodeScene(rec []byte) (PerScene, error) {
	if err := layout.CheckSize(SceneRecordName, len(rec), SceneStride); err != nil {
		return PerScene{}, err
	}
	return PerScene{
		View:       layout.Mat4(rec[ViewOffset:]),
		Projection: layout.Mat4(rec[ProjectionOffset:]),
		Camera:     layout.Vec3(rec[CameraOffset:]),
		NumLights:  layout.Int32(rec[NumLightsOffset:]),
	}, nil
}
