// Package frame rotates per-frame uniform regions so the host can record
// frame N+1 while the GPU still reads frame N.
//
// A Ring owns a fixed number of slots (2 for double buffering, 3 for
// triple buffering). Each slot carries one UniformPerScene record and a
// growable array of UniformPerInstance records. A slot moves through
//
//	free -> recording (Acquire) -> submitted (Submit) -> free (Release)
//
// and its bytes are never written while it is submitted: the producer always
// writes into a fresh slot instead of updating a record the GPU may be
// reading.
package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/sdfont"
	"github.com/gogpu/sdfont/layout"
	"github.com/gogpu/sdfont/uniform"
)

// Frame ring errors.
var (
	// ErrSlotInFlight is returned when writing to a slot that was submitted
	// and not yet released.
	ErrSlotInFlight = errors.New("frame: slot in flight")

	// ErrSlotNotSubmitted is returned when releasing a slot that was not
	// submitted.
	ErrSlotNotSubmitted = errors.New("frame: slot not submitted")

	// ErrForeignSlot is returned when a slot is released to a ring that did
	// not hand it out.
	ErrForeignSlot = errors.New("frame: slot belongs to another ring")

	// ErrNoScene is returned when submitting a slot without a scene record.
	ErrNoScene = errors.New("frame: no scene record")
)

type slotState int

const (
	stateFree slotState = iota
	stateRecording
	stateSubmitted
)

func (s slotState) String() string {
	switch s {
	case stateFree:
		return "free"
	case stateRecording:
		return "recording"
	case stateSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Ring hands out frame slots in rotation.
//
// Ring is safe for concurrent use: Release is typically called from a GPU
// completion callback on another goroutine.
type Ring struct {
	mu    sync.Mutex
	enc   *uniform.Encoder
	slots []*Slot
	free  chan *Slot
	frame uint64
	log   *slog.Logger
}

// NewRing creates a ring with sdfont.Options.Frames slots. Scenes written to
// its slots are validated by enc.
func NewRing(enc *uniform.Encoder, opts ...sdfont.Option) (*Ring, error) {
	if enc == nil {
		return nil, errors.New("frame: nil encoder")
	}
	o, err := sdfont.NewOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	r := &Ring{
		enc:   enc,
		slots: make([]*Slot, o.Frames),
		free:  make(chan *Slot, o.Frames),
		log:   o.Log(),
	}
	for i := range r.slots {
		s := &Slot{ring: r, index: i, scene: layout.NewAligned(uniform.SceneStride)}
		r.slots[i] = s
		r.free <- s
	}
	return r, nil
}

// Len returns the number of slots.
func (r *Ring) Len() int {
	return len(r.slots)
}

// InFlight returns the number of slots that are not free.
func (r *Ring) InFlight() int {
	return len(r.slots) - len(r.free)
}

// Acquire returns a free slot in the recording state, waiting until one is
// released or ctx is done.
func (r *Ring) Acquire(ctx context.Context) (*Slot, error) {
	var s *Slot
	select {
	case s = <-r.free:
	default:
		r.log.Warn("frame: waiting for a free slot", "slots", len(r.slots))
		select {
		case s = <-r.free:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	r.frame++
	s.frame = r.frame
	s.state = stateRecording
	s.hasScene = false
	s.instances = s.instances[:0]
	r.mu.Unlock()

	r.log.Debug("frame: slot acquired", "slot", s.index, "frame", s.frame)
	return s, nil
}

// Release marks the GPU work that read s as complete and returns s to the
// free list.
func (r *Ring) Release(s *Slot) error {
	if s == nil || s.ring != r {
		return ErrForeignSlot
	}
	r.mu.Lock()
	if s.state != stateSubmitted {
		st := s.state
		r.mu.Unlock()
		return fmt.Errorf("%w: slot %d is %s", ErrSlotNotSubmitted, s.index, st)
	}
	s.state = stateFree
	r.mu.Unlock()

	r.log.Debug("frame: slot released", "slot", s.index, "frame", s.frame)
	r.free <- s
	return nil
}

// Slot is one frame's uniform region.
type Slot struct {
	ring      *Ring
	index     int
	frame     uint64
	state     slotState
	scene     []byte
	hasScene  bool
	instances []byte
}

// Index returns the slot's position in the ring, which selects its region in
// a GPU buffer of Ring.Len() records.
func (s *Slot) Index() int {
	return s.index
}

// Frame returns the frame number the slot was last acquired for.
func (s *Slot) Frame() uint64 {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	return s.frame
}

// SceneOffset returns the byte offset of this slot's scene record in a
// buffer holding one scene record per slot.
func (s *Slot) SceneOffset() uint64 {
	return uint64(s.index) * uniform.SceneStride
}

// SetScene validates and encodes the frame's scene record.
func (s *Slot) SetScene(scene *uniform.PerScene) error {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	rec, err := s.ring.enc.Encode(scene)
	if err != nil {
		return err
	}
	copy(s.scene, rec[:])
	s.hasScene = true
	return nil
}

// AppendInstance encodes one instance record and returns its byte offset in
// the slot's instance region.
func (s *Slot) AppendInstance(inst uniform.PerInstance) (uint64, error) {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	if err := s.writable(); err != nil {
		return 0, err
	}
	if err := inst.Validate(); err != nil {
		return 0, err
	}
	off := len(s.instances)
	if cap(s.instances)-off < uniform.InstanceStride {
		grown := layout.NewAligned(max(2*cap(s.instances), 4*uniform.InstanceStride))
		s.instances = grown[:copy(grown, s.instances)]
	}
	s.instances = s.instances[:off+uniform.InstanceStride]
	rec := uniform.EncodeInstance(inst.Model)
	copy(s.instances[off:], rec[:])
	return uint64(off), nil
}

// Submitted is the immutable view of a submitted slot. The byte slices stay
// valid and unchanged until the slot is released.
type Submitted struct {
	Slot      int
	Frame     uint64
	Scene     []byte
	Instances []byte
}

// Submit freezes the slot for GPU consumption and returns its bytes.
func (s *Slot) Submit() (Submitted, error) {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	if err := s.writable(); err != nil {
		return Submitted{}, err
	}
	if !s.hasScene {
		return Submitted{}, ErrNoScene
	}
	s.state = stateSubmitted
	s.ring.log.Debug("frame: slot submitted",
		"slot", s.index, "frame", s.frame, "instances", len(s.instances)/uniform.InstanceStride)
	return Submitted{
		Slot:      s.index,
		Frame:     s.frame,
		Scene:     s.scene[:uniform.SceneStride:uniform.SceneStride],
		Instances: s.instances[:len(s.instances):len(s.instances)],
	}, nil
}

// writable must be called with ring.mu held.
func (s *Slot) writable() error {
	switch s.state {
	case stateRecording:
		return nil
	case stateSubmitted:
		return fmt.Errorf("%w: slot %d frame %d", ErrSlotInFlight, s.index, s.frame)
	}
	return fmt.Errorf("frame: slot %d is %s", s.index, s.state)
}
