package uniform

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sdfont"
	"github.com/gogpu/sdfont/layout"
)

func translation(x, y, z float32) f32.Mat4 {
	m := Identity()
	m[3], m[7], m[11] = x, y, z
	return m
}

func newEncoder(t *testing.T, opts ...sdfont.Option) *Encoder {
	t.Helper()
	e, err := NewEncoder(opts...)
	if err != nil {
		t.Fatalf("NewEncoder() = %v", err)
	}
	return e
}

func TestRecordLayouts(t *testing.T) {
	if err := layout.ValidateAll(InstanceRecord, SceneRecord); err != nil {
		t.Fatal(err)
	}
	if InstanceRecord.Stride != 64 || InstanceRecord.Size != 64 || InstanceRecord.Padding() != 0 {
		t.Errorf("UniformPerInstance size/stride = %d/%d, want 64/64", InstanceRecord.Size, InstanceRecord.Stride)
	}
	if SceneRecord.Stride != 160 || SceneRecord.Size != 148 {
		t.Errorf("UniformPerScene size/stride = %d/%d, want 148/160", SceneRecord.Size, SceneRecord.Stride)
	}
	offsets := map[string]int{
		"view_matrix":       0,
		"projection_matrix": 64,
		"camera_position":   128,
		"num_lights":        144,
	}
	for name, want := range offsets {
		if got, ok := SceneRecord.Offset(name); !ok || got != want {
			t.Errorf("offset(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestEncodeInstance(t *testing.T) {
	m := translation(1, 2, 3)
	rec := EncodeInstance(m)
	if len(rec) != 64 {
		t.Fatalf("len = %d, want 64", len(rec))
	}
	// Column-major: the translation column is the last 16 bytes.
	want := f32.Vec4{1, 2, 3, 1}
	if got := layout.Vec4(rec[48:]); got != want {
		t.Errorf("column 3 = %v, want %v", got, want)
	}
	got, err := DecodeInstance(rec[:])
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("DecodeInstance() = %v, want %v", got, m)
	}
	if _, err := DecodeInstance(rec[:60]); !errors.Is(err, layout.ErrSize) {
		t.Errorf("DecodeInstance(60 bytes) = %v, want ErrSize", err)
	}
}

func TestEncodeInstances(t *testing.T) {
	instances := []PerInstance{{Model: Identity()}, {Model: translation(5, 0, 0)}}
	buf := EncodeInstances(instances)
	if len(buf) != 128 {
		t.Fatalf("len = %d, want 128", len(buf))
	}
	if err := layout.CheckAddress(InstanceRecordName, buf); err != nil {
		t.Error(err)
	}
	got, err := DecodeInstance(buf[64:128])
	if err != nil || got != instances[1].Model {
		t.Errorf("instance 1 = %v, %v", got, err)
	}
}

func TestWriteInstances(t *testing.T) {
	buf := layout.NewAligned(3 * InstanceStride)
	if err := WriteInstances(buf, 64, []PerInstance{{Model: translation(1, 1, 1)}}); err != nil {
		t.Fatal(err)
	}
	if err := WriteInstances(buf, 8, []PerInstance{{Model: Identity()}}); !errors.Is(err, layout.ErrMisaligned) {
		t.Errorf("misaligned write = %v, want ErrMisaligned", err)
	}
	bad := Identity()
	bad[5] = float32(math.NaN())
	if err := WriteInstances(buf, 0, []PerInstance{{Model: bad}}); !errors.Is(err, layout.ErrInvalidConfig) {
		t.Errorf("NaN write = %v, want ErrInvalidConfig", err)
	}
}

func TestEncodeScene(t *testing.T) {
	e := newEncoder(t)
	view := translation(0, 0, -5)
	proj := Identity()
	proj[0] = 2
	cam := f32.Vec3{0, 1, 5}

	rec, err := e.EncodeScene(view, proj, cam, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec) != 160 {
		t.Fatalf("len = %d, want 160", len(rec))
	}
	if got := layout.Int32(rec[144:]); got != 3 {
		t.Errorf("num_lights at 144 = %d, want 3", got)
	}
	if got := layout.Vec3(rec[128:]); got != cam {
		t.Errorf("camera_position at 128 = %v, want %v", got, cam)
	}
	if got := layout.Float32(rec[64:]); got != 2 {
		t.Errorf("projection[0][0] at 64 = %v, want 2", got)
	}
	if !bytes.Equal(rec[140:144], make([]byte, 4)) {
		t.Errorf("camera lane 3 = % x, want zero", rec[140:144])
	}
	if !bytes.Equal(rec[148:160], make([]byte, 12)) {
		t.Errorf("reserved 148..160 = % x, want zero", rec[148:160])
	}

	s, err := DecodeScene(rec[:])
	if err != nil {
		t.Fatal(err)
	}
	want := PerScene{View: view, Projection: proj, Camera: cam, NumLights: 3}
	if s != want {
		t.Errorf("DecodeScene() = %+v, want %+v", s, want)
	}
}

func TestDecodeSceneIgnoresReserved(t *testing.T) {
	e := newEncoder(t)
	rec, err := e.Encode(&PerScene{View: Identity(), Projection: Identity(), NumLights: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 140; i < 144; i++ {
		rec[i] = 0xFF
	}
	for i := 148; i < 160; i++ {
		rec[i] = 0xFF
	}
	s, err := DecodeScene(rec[:])
	if err != nil {
		t.Fatal(err)
	}
	if s.NumLights != 1 || s.Camera != (f32.Vec3{}) {
		t.Errorf("reserved bytes leaked: %+v", s)
	}
	if _, err := DecodeScene(rec[:148]); !errors.Is(err, layout.ErrSize) {
		t.Errorf("DecodeScene(148 bytes) = %v, want ErrSize", err)
	}
}

func TestEncodeSceneNumLights(t *testing.T) {
	e := newEncoder(t, sdfont.WithMaxLights(4))
	tests := []struct {
		name    string
		n       int32
		wantErr bool
	}{
		{"no lights", 0, false},
		{"one light", 1, false},
		{"at capacity", 4, false},
		{"negative", -1, true},
		{"over capacity", 5, true},
		{"min int32", math.MinInt32, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.EncodeScene(Identity(), Identity(), f32.Vec3{}, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EncodeScene(num_lights=%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, layout.ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			var ce *layout.ConfigError
			if !errors.As(err, &ce) || ce.Field != "num_lights" {
				t.Errorf("error %v does not name num_lights", err)
			}
		})
	}
}

func TestEncodeSceneNonFinite(t *testing.T) {
	e := newEncoder(t)
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	badView := Identity()
	badView[0] = inf
	badProj := Identity()
	badProj[15] = nan

	tests := []struct {
		name  string
		scene PerScene
		field string
	}{
		{"view", PerScene{View: badView, Projection: Identity()}, "view_matrix"},
		{"projection", PerScene{View: Identity(), Projection: badProj}, "projection_matrix"},
		{"camera", PerScene{View: Identity(), Projection: Identity(), Camera: f32.Vec3{0, nan, 0}}, "camera_position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Encode(&tt.scene)
			var ce *layout.ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("Encode() = %v, want config error on %s", err, tt.field)
			}
		})
	}
}

func TestWriteScenes(t *testing.T) {
	e := newEncoder(t)
	scenes := []PerScene{DefaultScene(), DefaultScene()}
	scenes[1].NumLights = 2

	buf := layout.NewAligned(3 * SceneStride)
	if err := e.WriteScenes(buf, SceneStride, scenes); err != nil {
		t.Fatal(err)
	}
	// The second scene starts a full stride after the first, not at its size.
	s, err := DecodeScene(buf[2*SceneStride : 3*SceneStride])
	if err != nil || s.NumLights != 2 {
		t.Errorf("scene 1 = %+v, %v", s, err)
	}

	if err := e.WriteScenes(buf, 148, scenes[:1]); !errors.Is(err, layout.ErrMisaligned) {
		t.Errorf("WriteScenes at 148 = %v, want ErrMisaligned", err)
	}
	if err := e.WriteScenes(buf, 2*SceneStride, scenes); !errors.Is(err, layout.ErrSize) {
		t.Errorf("overflowing WriteScenes = %v, want ErrSize", err)
	}

	fresh := layout.NewAligned(2 * SceneStride)
	scenes[1].NumLights = -1
	if err := e.WriteScenes(fresh, 0, scenes); !errors.Is(err, layout.ErrInvalidConfig) {
		t.Errorf("WriteScenes with bad scene = %v, want ErrInvalidConfig", err)
	}
	if !bytes.Equal(fresh, make([]byte, len(fresh))) {
		t.Error("rejected WriteScenes wrote partial data")
	}
}

func TestMisalignedBaseRejectedForAllUniforms(t *testing.T) {
	e := newEncoder(t)
	buf := layout.NewAligned(4 * SceneStride)
	for _, off := range []uint64{4, 8, 12, 20, 100} {
		if err := WriteInstances(buf, off, []PerInstance{{Model: Identity()}}); !errors.Is(err, layout.ErrMisaligned) {
			t.Errorf("WriteInstances(%d) = %v", off, err)
		}
		if err := e.WriteScenes(buf, off, []PerScene{DefaultScene()}); !errors.Is(err, layout.ErrMisaligned) {
			t.Errorf("WriteScenes(%d) = %v", off, err)
		}
	}
}

func TestNewEncoderInvalidOptions(t *testing.T) {
	if _, err := NewEncoder(sdfont.WithMaxLights(-2)); !errors.Is(err, layout.ErrInvalidConfig) {
		t.Errorf("NewEncoder(-2 lights) = %v, want ErrInvalidConfig", err)
	}
	e := newEncoder(t, sdfont.WithMaxLights(8))
	if e.MaxLights() != 8 {
		t.Errorf("MaxLights() = %d, want 8", e.MaxLights())
	}
}

func TestBindGroupLayoutEntries(t *testing.T) {
	entries := BindGroupLayoutEntries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	scene, inst := entries[0], entries[1]
	if scene.Binding != SceneBinding || scene.Buffer == nil || scene.Buffer.MinBindingSize != 160 {
		t.Errorf("scene entry = %+v", scene)
	}
	if scene.Visibility&gputypes.ShaderStageFragment == 0 {
		t.Error("scene uniform not visible to the fragment stage")
	}
	if inst.Binding != InstanceBinding || inst.Buffer == nil || inst.Buffer.MinBindingSize != 64 {
		t.Errorf("instance entry = %+v", inst)
	}
	if inst.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Errorf("instance buffer type = %v, want uniform", inst.Buffer.Type)
	}
}

func TestBufferDescriptors(t *testing.T) {
	d := SceneBufferDescriptor(3)
	if d.Size != 480 {
		t.Errorf("scene buffer size = %d, want 480", d.Size)
	}
	if d.Usage&gputypes.BufferUsageUniform == 0 || d.Usage&gputypes.BufferUsageCopyDst == 0 {
		t.Errorf("scene buffer usage = %v", d.Usage)
	}
	if got := InstanceBufferDescriptor(10).Size; got != 640 {
		t.Errorf("instance buffer size = %d, want 640", got)
	}
	if got := InstanceBufferDescriptor(0).Size; got != 64 {
		t.Errorf("empty instance buffer size = %d, want one stride", got)
	}
}
