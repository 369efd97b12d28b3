package vertex

import (
	"encoding/binary"
	"strconv"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/sdfont/layout"
)

// IndexStride is the byte stride of one VertexInIndex (uint32).
const IndexStride = 4

// TextureMargin extends each glyph box in texture space so the spread of the
// distance field around the glyph is sampled.
const TextureMargin = 0.001

// Rect is an axis-aligned rectangle with its origin at the lower-left corner.
type Rect struct {
	X, Y, Width, Height float32
}

// GlyphBound pairs the glyph's rectangle in the typesetting area with its
// rectangle in the SDF atlas (normalized texture coordinates).
type GlyphBound struct {
	Frame   Rect
	Texture Rect
}

// QuadMesh builds four vertices and six indices per glyph.
//
// Frame coordinates are divided by scale, the factor the typesetting area
// was enlarged by, and the texture margin is carried over to the frame in
// proportion to the glyph's size ratio. Vertices are emitted counter-clockwise
// from the lower-left corner with z = 0 and w = 1.
func QuadMesh(bounds []GlyphBound, scale float32) ([]PositionUV, []uint32, error) {
	if !layout.IsFinite(scale) || scale <= 0 {
		return nil, nil, &layout.ConfigError{Record: RecordName, Field: "scale", Reason: "must be finite and positive"}
	}

	vertices := make([]PositionUV, 0, len(bounds)*4)
	indices := make([]uint32, 0, len(bounds)*6)

	for i, b := range bounds {
		if b.Texture.Width <= 0 || b.Texture.Height <= 0 {
			return nil, nil, &layout.ConfigError{
				Record: RecordName,
				Field:  "texture",
				Reason: "glyph " + strconv.Itoa(i) + " has an empty texture bound",
			}
		}

		var factor float32
		if b.Texture.Width > b.Texture.Height {
			factor = b.Frame.Width / b.Texture.Width
		} else {
			factor = b.Frame.Height / b.Texture.Height
		}
		fm := factor * TextureMargin

		xl := (b.Frame.X - fm) / scale
		xr := (b.Frame.X + b.Frame.Width + fm) / scale
		yl := (b.Frame.Y - fm) / scale
		yu := (b.Frame.Y + b.Frame.Height + fm) / scale

		ul := b.Texture.X - TextureMargin
		ur := b.Texture.X + b.Texture.Width + TextureMargin
		vl := b.Texture.Y - TextureMargin
		vu := b.Texture.Y + b.Texture.Height + TextureMargin

		base := uint32(len(vertices))
		vertices = append(vertices,
			PositionUV{Position: f32.Vec4{xl, yl, 0, 1}, UV: f32.Vec2{ul, vl}},
			PositionUV{Position: f32.Vec4{xr, yl, 0, 1}, UV: f32.Vec2{ur, vl}},
			PositionUV{Position: f32.Vec4{xr, yu, 0, 1}, UV: f32.Vec2{ur, vu}},
			PositionUV{Position: f32.Vec4{xl, yu, 0, 1}, UV: f32.Vec2{ul, vu}},
		)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices, nil
}

// EncodeIndices serializes indices as little-endian uint32 values.
func EncodeIndices(indices []uint32) []byte {
	if len(indices) == 0 {
		return nil
	}
	data := layout.NewAligned(len(indices) * IndexStride)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(data[i*IndexStride:], idx)
	}
	return data
}
