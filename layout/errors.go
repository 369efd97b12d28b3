package layout

import (
	"errors"
	"strconv"
)

// Sentinel errors for the two error classes of the host boundary.
var (
	// ErrMisaligned is returned when a record base is not a multiple of
	// BaseAlignment.
	ErrMisaligned = errors.New("layout: base not 16-byte aligned")

	// ErrSize is returned when a record or buffer has the wrong length.
	ErrSize = errors.New("layout: wrong record size")

	// ErrInvalidConfig is returned when record contents are rejected
	// before submission.
	ErrInvalidConfig = errors.New("layout: invalid configuration")
)

// ViolationError reports a layout violation detected at the host boundary.
// It wraps ErrMisaligned or ErrSize.
type ViolationError struct {
	Record string
	Offset uint64 // base offset or address, for ErrMisaligned
	Got    int    // observed length, for ErrSize
	Want   int    // required length, for ErrSize
	Err    error
}

func (e *ViolationError) Error() string {
	switch e.Err {
	case ErrMisaligned:
		return "layout: " + e.Record + ": base 0x" + strconv.FormatUint(e.Offset, 16) +
			" not 16-byte aligned"
	case ErrSize:
		return "layout: " + e.Record + ": got " + strconv.Itoa(e.Got) +
			" bytes, want " + strconv.Itoa(e.Want)
	}
	return "layout: " + e.Record + ": " + e.Err.Error()
}

func (e *ViolationError) Unwrap() error { return e.Err }

// ConfigError reports record contents rejected before submission.
// It always matches ErrInvalidConfig with errors.Is; Err, when set, is a
// more specific cause that can be matched too.
type ConfigError struct {
	Record string
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return "layout: invalid config " + e.Record + "." + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}
