package layout

import (
	"errors"
	"fmt"
	"slices"
)

// Field describes one live member of a record.
type Field struct {
	Name   string
	Offset int
	Size   int
	Align  int
}

// Span is a reserved byte range inside a record. Producers write zeros
// into reserved spans; consumers never read them.
type Span struct {
	Offset int
	Size   int
}

// Record describes the binary layout of one host/shader record.
//
// Size is the number of bytes up to the end of the last live field.
// Stride is the distance between consecutive records in an array and is
// Size rounded up to Align. Fields and Reserved together must tile
// [0, Stride) exactly, so no byte is left to the target language's packing
// rules.
type Record struct {
	Name     string
	Size     int
	Stride   int
	Align    int
	Fields   []Field
	Reserved []Span
}

// Offset returns the byte offset of the named field.
func (r Record) Offset(name string) (int, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Offset, true
		}
	}
	return 0, false
}

// Padding returns the number of trailing bytes between Size and Stride.
func (r Record) Padding() int {
	return r.Stride - r.Size
}

// Validate checks the descriptor's internal consistency.
func (r Record) Validate() error {
	if r.Align <= 0 || r.Align&(r.Align-1) != 0 {
		return fmt.Errorf("layout: %s: alignment %d is not a power of two", r.Name, r.Align)
	}
	if r.Align != BaseAlignment {
		return fmt.Errorf("layout: %s: alignment %d, want %d", r.Name, r.Align, BaseAlignment)
	}
	if r.Stride%r.Align != 0 {
		return fmt.Errorf("layout: %s: stride %d is not a multiple of %d", r.Name, r.Stride, r.Align)
	}
	if int(AlignUp(uint64(r.Size), uint64(r.Align))) != r.Stride {
		return fmt.Errorf("layout: %s: stride %d, want size %d rounded to %d", r.Name, r.Stride, r.Size, r.Align)
	}

	spans := make([]Span, 0, len(r.Fields)+len(r.Reserved))
	end := 0
	for _, f := range r.Fields {
		if f.Align <= 0 || f.Offset%f.Align != 0 {
			return fmt.Errorf("layout: %s.%s: offset %d not aligned to %d", r.Name, f.Name, f.Offset, f.Align)
		}
		spans = append(spans, Span{Offset: f.Offset, Size: f.Size})
		end = max(end, f.Offset+f.Size)
	}
	if end != r.Size {
		return fmt.Errorf("layout: %s: live data ends at %d, want size %d", r.Name, end, r.Size)
	}
	spans = append(spans, r.Reserved...)
	slices.SortFunc(spans, func(a, b Span) int { return a.Offset - b.Offset })

	next := 0
	for _, s := range spans {
		if s.Offset != next {
			return fmt.Errorf("layout: %s: gap or overlap at byte %d", r.Name, next)
		}
		next = s.Offset + s.Size
	}
	if next != r.Stride {
		return fmt.Errorf("layout: %s: spans cover %d bytes, want stride %d", r.Name, next, r.Stride)
	}
	return nil
}

// ValidateAll validates every record and joins the failures.
func ValidateAll(records ...Record) error {
	var errs []error
	for _, r := range records {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
