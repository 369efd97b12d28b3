// Package shader holds the WGSL declaration of the records encoded by the
// vertex, uniform and sdf packages, together with the binding indices both
// sides agree on.
package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/sdfont/sdf"
	"github.com/gogpu/sdfont/uniform"
	"github.com/gogpu/sdfont/vertex"
)

//go:embed shaders/render_uniforms.wgsl
var renderUniformsSource string

// Entry point names.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Bind group 0 layout:
//
//	Binding 0: SDF sampler (fragment)
//	Binding 1: UniformPerScene (vertex+fragment)
//	Binding 2: UniformPerInstance (vertex)
//	Binding 3: SDF texture (fragment)
//	Binding 4: UniformSDFont (fragment)
const (
	SamplerBinding  = 0
	SceneBinding    = uniform.SceneBinding
	InstanceBinding = uniform.InstanceBinding
	TextureBinding  = 3
	FontBinding     = sdf.Binding

	// VertexBufferSlot is the vertex buffer slot of VertexInPositionUV.
	VertexBufferSlot = 0
)

// Source returns the WGSL declaration.
func Source() string {
	return renderUniformsSource
}

// CompileSPIRV compiles the declaration to SPIR-V words.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(renderUniformsSource)
	if err != nil {
		return nil, fmt.Errorf("shader: compile render_uniforms: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// BindGroupLayoutEntries returns the complete bind group 0 layout.
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    SamplerBinding,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
	entries = append(entries, uniform.BindGroupLayoutEntries()...)
	entries = append(entries,
		gputypes.BindGroupLayoutEntry{
			Binding:    TextureBinding,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		sdf.BindGroupLayoutEntry(),
	)
	return entries
}

// VertexBuffers returns the vertex buffer layouts consumed by vs_main.
func VertexBuffers() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{vertex.BufferLayout()}
}
