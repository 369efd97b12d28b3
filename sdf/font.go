// Package sdf encodes UniformSDFont, the fragment-stage configuration that
// selects and parametrizes one of the seven SDF coverage functions.
//
// Layout (size 32, stride 32, alignment 16):
//
//	foreground_color vec4<f32>  offset 0
//	func_type        i32        offset 16
//	width            f32        offset 20
//	point1           f32        offset 24
//	point2           f32        offset 28
//
// The vec4 sets the struct alignment to 16 and the live fields end exactly
// on a 16-byte boundary, so no trailing padding exists under either the
// WGSL uniform rules or the Metal rules.
package sdf

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sdfont"
	"github.com/gogpu/sdfont/layout"
)

// RecordName is the shader-side name of the record.
const RecordName = "UniformSDFont"

// Layout constants of UniformSDFont.
const (
	ColorOffset    = 0
	FuncTypeOffset = 16
	WidthOffset    = 20
	Point1Offset   = 24
	Point2Offset   = 28
	Size           = 32
	Stride         = 32
	Alignment      = 16

	// Binding is the bind group 0 binding of the UniformSDFont buffer.
	Binding = 4
)

// Record describes the UniformSDFont layout.
var Record = layout.Record{
	Name:   RecordName,
	Size:   Size,
	Stride: Stride,
	Align:  Alignment,
	Fields: []layout.Field{
		{Name: "foreground_color", Offset: ColorOffset, Size: layout.Vec4Size, Align: 16},
		{Name: "func_type", Offset: FuncTypeOffset, Size: layout.ScalarSize, Align: 4},
		{Name: "width", Offset: WidthOffset, Size: layout.ScalarSize, Align: 4},
		{Name: "point1", Offset: Point1Offset, Size: layout.ScalarSize, Align: 4},
		{Name: "point2", Offset: Point2Offset, Size: layout.ScalarSize, Align: 4},
	},
}

// Font is the configuration of one font-rendering draw.
//
// Width, Point1 and Point2 are shape parameters whose meaning depends on
// Function (edge width and two thresholds). Only Width is constrained here;
// the valid ranges of the two points belong to the font styling layer.
type Font struct {
	Color    f32.Vec4
	Function FunctionType
	Width    float32
	Point1   float32
	Point2   float32
}

// Default returns opaque white with PASS_THROUGH and zero parameters.
func Default() Font {
	return Font{Color: f32.Vec4{1, 1, 1, 1}, Function: PassThrough}
}

// WithFunction returns a copy of f selecting fn. Switching functions is a
// plain re-encode; no other field changes.
func (f Font) WithFunction(fn FunctionType) Font {
	f.Function = fn
	return f
}

// Validate rejects an undefined function type and a width that is negative
// or not finite.
func (f Font) Validate() error {
	if err := f.Function.Check(); err != nil {
		return err
	}
	if !layout.IsFinite(f.Width) {
		return &layout.ConfigError{Record: RecordName, Field: "width", Reason: "must be finite"}
	}
	if f.Width < 0 {
		return &layout.ConfigError{Record: RecordName, Field: "width", Reason: "must be non-negative"}
	}
	return nil
}

// Encode validates f and returns its 32-byte record.
func (f Font) Encode() ([Stride]byte, error) {
	var rec [Stride]byte
	if err := f.Validate(); err != nil {
		sdfont.Logger().Debug("sdf: rejected font uniform",
			"func_type", int32(f.Function), "width", f.Width, "err", err)
		return rec, err
	}
	layout.PutVec4(rec[ColorOffset:], f.Color)
	layout.PutInt32(rec[FuncTypeOffset:], int32(f.Function))
	layout.PutFloat32(rec[WidthOffset:], f.Width)
	layout.PutFloat32(rec[Point1Offset:], f.Point1)
	layout.PutFloat32(rec[Point2Offset:], f.Point2)
	return rec, nil
}

// Encode validates and encodes one UniformSDFont record.
func Encode(color f32.Vec4, fn FunctionType, width, point1, point2 float32) ([Stride]byte, error) {
	return Font{Color: color, Function: fn, Width: width, Point1: point1, Point2: point2}.Encode()
}

// Decode reads one 32-byte record and applies the same checks as Encode,
// so an undefined func_type never leaves the host boundary in either
// direction.
func Decode(rec []byte) (Font, error) {
	if err := layout.CheckSize(RecordName, len(rec), Stride); err != nil {
		return Font{}, err
	}
	f := Font{
		Color:    layout.Vec4(rec[ColorOffset:]),
		Function: FunctionType(layout.Int32(rec[FuncTypeOffset:])),
		Width:    layout.Float32(rec[WidthOffset:]),
		Point1:   layout.Float32(rec[Point1Offset:]),
		Point2:   layout.Float32(rec[Point2Offset:]),
	}
	if err := f.Validate(); err != nil {
		return Font{}, err
	}
	return f, nil
}

// WriteAt validates fonts and writes them into buf starting at offset, one
// record per 32 bytes. The offset must be a multiple of 16. Nothing is
// written if any record is rejected.
func WriteAt(buf []byte, offset uint64, fonts []Font) error {
	if err := layout.CheckSpan(RecordName, len(buf), offset, len(fonts)*Stride); err != nil {
		sdfont.Logger().Debug("sdf: rejected write", "offset", offset, "err", err)
		return err
	}
	recs := make([][Stride]byte, len(fonts))
	for i, f := range fonts {
		rec, err := f.Encode()
		if err != nil {
			return err
		}
		recs[i] = rec
	}
	dst := buf[offset:]
	for i := range recs {
		copy(dst[i*Stride:], recs[i][:])
	}
	return nil
}

// BindGroupLayoutEntry returns the layout entry of the UniformSDFont buffer,
// read by the fragment stage only.
func BindGroupLayoutEntry() gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    Binding,
		Visibility: gputypes.ShaderStageFragment,
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: Stride,
		},
	}
}
