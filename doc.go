// Package sdfont defines the binary contract between host code and the
// shader stages of a signed-distance-field text renderer.
//
// # Overview
//
// Every record that crosses the CPU/GPU boundary has a fixed layout that must
// match the shader declaration bit for bit. A mismatch is never reported by
// the GPU; it renders wrong pixels. The sub-packages therefore encode each
// record explicitly, field by field, into little-endian bytes with declared
// reserved spans, and reject bad input at the host boundary:
//
//   - layout: alignment rules, record descriptors, layout and config errors
//   - vertex: VertexInPositionUV (24 bytes of data, 32-byte stride)
//   - uniform: UniformPerInstance (64/64) and UniformPerScene (148/160)
//   - sdf: SDFontFunctionType and UniformSDFont (32/32)
//   - shader: the WGSL declaration of the same structs
//   - frame: rotating frame slots so a submitted record is never rewritten
//
// # Wire rules
//
// Integers are little-endian, floats are IEEE-754 binary32, matrices are
// column-major and every record starts on a 16-byte boundary.
//
// # Quick Start
//
//	enc, err := uniform.NewEncoder(sdfont.WithMaxLights(8))
//	if err != nil {
//	    return err
//	}
//	scene, err := enc.EncodeScene(view, proj, f32.Vec3{0, 0, -5}, 2)
//	if err != nil {
//	    return err // invalid configuration, nothing was submitted
//	}
//
//	font, err := sdf.Encode(f32.Vec4{1, 1, 1, 1}, sdf.SmoothStep, 0.02, 0.4, 0.6)
//
// # Logging
//
// sdfont is silent by default. See [SetLogger].
package sdfont
