package sdfont

import (
	"log/slog"

	"github.com/gogpu/sdfont/layout"
)

// Default configuration values.
const (
	// DefaultMaxLights is the light-array capacity assumed when the host
	// pipeline does not declare one.
	DefaultMaxLights = 16

	// DefaultFrames is the number of in-flight frame slots (triple buffering).
	DefaultFrames = 3

	// MaxFrames is the largest supported number of in-flight frame slots.
	MaxFrames = 3
)

// Option configures encoders and frame rings during creation.
//
// Example:
//
//	enc, err := uniform.NewEncoder(sdfont.WithMaxLights(8))
//	ring, err := frame.NewRing(enc, sdfont.WithFrames(2))
type Option func(*Options)

// Options holds the configuration shared by the sub-packages.
type Options struct {
	// MaxLights is the capacity of the light array referenced by
	// UniformPerScene.num_lights. A scene may declare 0..MaxLights lights.
	MaxLights int32

	// Frames is the number of frame slots a frame.Ring rotates through.
	// 2 is double buffering, 3 is triple buffering.
	Frames int

	// Logger overrides the package logger. Nil means Logger().
	Logger *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		MaxLights: DefaultMaxLights,
		Frames:    DefaultFrames,
	}
}

// NewOptions applies opts over DefaultOptions and validates the result.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// WithMaxLights sets the declared light-array capacity.
func WithMaxLights(n int32) Option {
	return func(o *Options) {
		o.MaxLights = n
	}
}

// WithFrames sets the number of in-flight frame slots.
func WithFrames(n int) Option {
	return func(o *Options) {
		o.Frames = n
	}
}

// WithLogger sets a logger for a single encoder or ring instead of the
// package-wide one configured with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.MaxLights < 0 {
		return &layout.ConfigError{Record: "Options", Field: "MaxLights", Reason: "must be non-negative"}
	}
	if o.Frames < 1 || o.Frames > MaxFrames {
		return &layout.ConfigError{Record: "Options", Field: "Frames", Reason: "must be in [1, 3]"}
	}
	return nil
}

// Log returns the configured logger, falling back to Logger().
func (o Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}
