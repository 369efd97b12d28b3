package sdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/sdfont/layout"
)

// ErrUnknownFunction is returned for a func_type outside the seven defined
// values. It matches layout.ErrInvalidConfig.
var ErrUnknownFunction = fmt.Errorf("sdf: unknown function type: %w", layout.ErrInvalidConfig)

// FunctionType selects the distance-to-coverage mapping the fragment stage
// applies to the sampled distance.
//
// The numeric value, not the name, is what the shader reads. Each constant
// carries an explicit value; never renumber or reuse one.
type FunctionType int32

// Function types.
const (
	PassThrough FunctionType = 0
	Step        FunctionType = 1
	SmoothStep  FunctionType = 2
	SlopeStep   FunctionType = 3
	Trapezoid   FunctionType = 4
	TwinPeaks   FunctionType = 5
	Halo        FunctionType = 6
)

var functionNames = [...]string{
	PassThrough: "PASS_THROUGH",
	Step:        "STEP",
	SmoothStep:  "SMOOTH_STEP",
	SlopeStep:   "SLOPE_STEP",
	Trapezoid:   "TRAPEZOID",
	TwinPeaks:   "TWIN_PEAKS",
	Halo:        "HALO",
}

// FunctionTypes returns every defined function type in wire order.
func FunctionTypes() []FunctionType {
	return []FunctionType{PassThrough, Step, SmoothStep, SlopeStep, Trapezoid, TwinPeaks, Halo}
}

// Valid reports whether f is one of the defined function types.
func (f FunctionType) Valid() bool {
	return f >= PassThrough && f <= Halo
}

// String returns the wire name, e.g. "SMOOTH_STEP".
func (f FunctionType) String() string {
	if f.Valid() {
		return functionNames[f]
	}
	return "FunctionType(" + strconv.Itoa(int(f)) + ")"
}

// Check returns ErrUnknownFunction wrapped in a ConfigError when f is not
// defined.
func (f FunctionType) Check() error {
	if f.Valid() {
		return nil
	}
	return &layout.ConfigError{
		Record: RecordName,
		Field:  "func_type",
		Reason: strconv.Itoa(int(f)) + " is not in [0, 6]",
		Err:    ErrUnknownFunction,
	}
}

// ParseFunctionType parses a wire name. The "SDFONT_" prefix and case are
// ignored.
func ParseFunctionType(name string) (FunctionType, error) {
	n := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "SDFONT_")
	for i, s := range functionNames {
		if s == n {
			return FunctionType(i), nil
		}
	}
	return 0, fmt.Errorf("sdf: parse %q: %w", name, ErrUnknownFunction)
}

// MarshalText implements encoding.TextMarshaler.
func (f FunctionType) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, f.Check()
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FunctionType) UnmarshalText(text []byte) error {
	v, err := ParseFunctionType(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
