package uniform

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Bind group 0 binding indices of the uniform blocks.
const (
	SceneBinding    = 1
	InstanceBinding = 2
)

// BindGroupLayoutEntries returns the layout entries for the per-scene
// (vertex and fragment) and per-instance (vertex) uniform buffers.
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    SceneBinding,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: SceneStride, // sizeof(UniformPerScene)
			},
		},
		{
			Binding:    InstanceBinding,
			Visibility: gputypes.ShaderStageVertex,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: InstanceStride, // sizeof(UniformPerInstance)
			},
		},
	}
}

// SceneBufferDescriptor describes a uniform buffer holding one per-scene
// record for each of frames in-flight frames.
func SceneBufferDescriptor(frames int) *hal.BufferDescriptor {
	return &hal.BufferDescriptor{
		Label: "sdfont_uniform_per_scene",
		Size:  uint64(max(frames, 1)) * SceneStride,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	}
}

// InstanceBufferDescriptor describes a uniform buffer holding count
// per-instance records.
func InstanceBufferDescriptor(count int) *hal.BufferDescriptor {
	return &hal.BufferDescriptor{
		Label: "sdfont_uniform_per_instance",
		Size:  uint64(max(count, 1)) * InstanceStride,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	}
}
