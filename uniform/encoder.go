package uniform

import (
	"fmt"
	"log/slog"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/sdfont"
	"github.com/gogpu/sdfont/layout"
)

// Encoder encodes UniformPerScene records against the light-array capacity
// declared by the host pipeline.
//
// An Encoder is immutable after creation and safe for concurrent use.
type Encoder struct {
	maxLights int32
	log       *slog.Logger
}

// NewEncoder creates an Encoder. See sdfont.WithMaxLights.
func NewEncoder(opts ...sdfont.Option) (*Encoder, error) {
	o, err := sdfont.NewOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("uniform: %w", err)
	}
	return &Encoder{maxLights: o.MaxLights, log: o.Log()}, nil
}

// MaxLights returns the declared light-array capacity.
func (e *Encoder) MaxLights() int32 {
	return e.maxLights
}

// ValidateScene rejects a scene the shader cannot interpret: a light count
// outside [0, MaxLights] or non-finite matrix or camera components. Out of
// range values are never clamped.
func (e *Encoder) ValidateScene(s *PerScene) error {
	var err error
	switch {
	case s.NumLights < 0:
		err = &layout.ConfigError{Record: SceneRecordName, Field: "num_lights",
			Reason: fmt.Sprintf("%d is negative", s.NumLights)}
	case s.NumLights > e.maxLights:
		err = &layout.ConfigError{Record: SceneRecordName, Field: "num_lights",
			Reason: fmt.Sprintf("%d exceeds light capacity %d", s.NumLights, e.maxLights)}
	case !layout.Mat4Finite(&s.View):
		err = &layout.ConfigError{Record: SceneRecordName, Field: "view_matrix", Reason: "must be finite"}
	case !layout.Mat4Finite(&s.Projection):
		err = &layout.ConfigError{Record: SceneRecordName, Field: "projection_matrix", Reason: "must be finite"}
	case !layout.AllFinite(s.Camera[:]...):
		err = &layout.ConfigError{Record: SceneRecordName, Field: "camera_position", Reason: "must be finite"}
	}
	if err != nil {
		e.log.Debug("uniform: rejected scene", "err", err)
	}
	return err
}

// EncodeScene validates and encodes one 160-byte UniformPerScene record.
func (e *Encoder) EncodeScene(view, projection f32.Mat4, camera f32.Vec3, numLights int32) ([SceneStride]byte, error) {
	s := PerScene{View: view, Projection: projection, Camera: camera, NumLights: numLights}
	return e.Encode(&s)
}

// Encode validates and encodes s.
func (e *Encoder) Encode(s *PerScene) ([SceneStride]byte, error) {
	var rec [SceneStride]byte
	if err := e.ValidateScene(s); err != nil {
		return rec, err
	}
	putScene(rec[:], s)
	return rec, nil
}

// WriteScenes writes an array of scenes into buf at offset, each rounded
// up to the 160-byte stride. Nothing is written if any scene is rejected.
func (e *Encoder) WriteScenes(buf []byte, offset uint64, scenes []PerScene) error {
	if err := layout.CheckSpan(SceneRecordName, len(buf), offset, len(scenes)*SceneStride); err != nil {
		e.log.Debug("uniform: rejected scene write", "offset", offset, "err", err)
		return err
	}
	for i := range scenes {
		if err := e.ValidateScene(&scenes[i]); err != nil {
			return fmt.Errorf("uniform: scene %d: %w", i, err)
		}
	}
	dst := buf[offset:]
	for i := range scenes {
		putScene(dst[i*SceneStride:], &scenes[i])
	}
	return nil
}
