// Package vertex encodes VertexInPositionUV, the per-vertex input record of
// the SDF text pipeline.
//
// Layout per vertex:
//
//	position (vec4<f32>) = 16 bytes  offset 0   (location 0)
//	uv       (vec2<f32>) =  8 bytes  offset 16  (location 1)
//	reserved             =  8 bytes  offset 24
//
// Size = 24, stride = 32, alignment = 16.
package vertex

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sdfont"
	"github.com/gogpu/sdfont/layout"
)

// RecordName is the shader-side name of the record.
const RecordName = "VertexInPositionUV"

// Layout constants of VertexInPositionUV.
const (
	PositionOffset = 0
	UVOffset       = 16
	Size           = 24
	Stride         = 32
	Alignment      = 16

	// Shader attribute locations.
	PositionLocation = 0
	UVLocation       = 1
)

// Record describes the VertexInPositionUV layout.
var Record = layout.Record{
	Name:   RecordName,
	Size:   Size,
	Stride: Stride,
	Align:  Alignment,
	Fields: []layout.Field{
		{Name: "position", Offset: PositionOffset, Size: layout.Vec4Size, Align: 16},
		{Name: "uv", Offset: UVOffset, Size: layout.Vec2Size, Align: 8},
	},
	Reserved: []layout.Span{{Offset: Size, Size: Stride - Size}},
}

// PositionUV is one vertex: a homogeneous position and a texture coordinate.
type PositionUV struct {
	Position f32.Vec4
	UV       f32.Vec2
}

// Encode returns the 32-byte record for one vertex. The reserved bytes are
// zero.
func Encode(position f32.Vec4, uv f32.Vec2) [Stride]byte {
	var rec [Stride]byte
	PositionUV{Position: position, UV: uv}.put(rec[:])
	return rec
}

// Decode reads one 32-byte record. The reserved bytes 24..32 are not read.
func Decode(rec []byte) (f32.Vec4, f32.Vec2, error) {
	if err := layout.CheckSize(RecordName, len(rec), Stride); err != nil {
		return f32.Vec4{}, f32.Vec2{}, err
	}
	return layout.Vec4(rec[PositionOffset:]), layout.Vec2(rec[UVOffset:]), nil
}

// put writes v into dst[0:Stride].
func (v PositionUV) put(dst []byte) {
	layout.PutVec4(dst[PositionOffset:], v.Position)
	layout.PutVec2(dst[UVOffset:], v.UV)
	layout.Zero(dst[Size:Stride])
}

// EncodeAll serializes vertices into a new 16-byte aligned buffer, one
// record per 32 bytes.
func EncodeAll(vertices []PositionUV) []byte {
	if len(vertices) == 0 {
		return nil
	}
	buf := layout.NewAligned(len(vertices) * Stride)
	for i, v := range vertices {
		v.put(buf[i*Stride:])
	}
	return buf
}

// EncodeStream serializes parallel position and uv slices. Both slices must
// have the same length.
func EncodeStream(positions []f32.Vec4, uvs []f32.Vec2) ([]byte, error) {
	if len(positions) != len(uvs) {
		return nil, &layout.ConfigError{
			Record: RecordName,
			Field:  "uv",
			Reason: fmt.Sprintf("%d uvs for %d positions", len(uvs), len(positions)),
		}
	}
	vertices := make([]PositionUV, len(positions))
	for i := range positions {
		vertices[i] = PositionUV{Position: positions[i], UV: uvs[i]}
	}
	return EncodeAll(vertices), nil
}

// WriteAt writes vertices into buf starting at byte offset. The offset must
// be a multiple of 16 and buf must hold every record.
func WriteAt(buf []byte, offset uint64, vertices []PositionUV) error {
	if err := layout.CheckSpan(RecordName, len(buf), offset, len(vertices)*Stride); err != nil {
		sdfont.Logger().Debug("vertex: rejected write",
			"offset", offset, "count", len(vertices), "err", err)
		return err
	}
	dst := buf[offset:]
	for i, v := range vertices {
		v.put(dst[i*Stride:])
	}
	return nil
}

// DecodeAll reads a buffer of consecutive records.
func DecodeAll(buf []byte) ([]PositionUV, error) {
	if len(buf)%Stride != 0 {
		return nil, layout.CheckSize(RecordName, len(buf), (len(buf)/Stride+1)*Stride)
	}
	out := make([]PositionUV, len(buf)/Stride)
	for i := range out {
		rec := buf[i*Stride : (i+1)*Stride]
		out[i] = PositionUV{
			Position: layout.Vec4(rec[PositionOffset:]),
			UV:       layout.Vec2(rec[UVOffset:]),
		}
	}
	return out, nil
}

// BufferLayout returns the vertex buffer layout for a render pipeline
// consuming VertexInPositionUV.
func BufferLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: Stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: PositionOffset, ShaderLocation: PositionLocation},
			{Format: gputypes.VertexFormatFloat32x2, Offset: UVOffset, ShaderLocation: UVLocation},
		},
	}
}
