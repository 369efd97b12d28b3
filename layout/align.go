package layout

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// BaseAlignment is the required alignment, in bytes, of the first byte of
// every record in this contract.
const BaseAlignment = 16

// AlignUp rounds n up to the next multiple of align. align must be a power
// of two.
func AlignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

// IsAligned reports whether n is a multiple of align.
func IsAligned(n, align uint64) bool {
	return n&(align-1) == 0
}

// CheckBase rejects a record base offset inside a GPU buffer that is not a
// multiple of BaseAlignment.
func CheckBase(record string, offset uint64) error {
	if !IsAligned(offset, BaseAlignment) {
		return &ViolationError{Record: record, Offset: offset, Err: ErrMisaligned}
	}
	return nil
}

// CheckAddress applies the CheckBase rule to the address of the first byte
// of a host buffer. An empty buffer has no base and is accepted.
func CheckAddress(record string, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return CheckBase(record, uint64(uintptr(unsafe.Pointer(&buf[0]))))
}

// CheckSize rejects a record whose length is not want.
func CheckSize(record string, got, want int) error {
	if got != want {
		return &ViolationError{Record: record, Got: got, Want: want, Err: ErrSize}
	}
	return nil
}

// CheckSpan rejects a write of n bytes at offset into a buffer of length
// size, and a misaligned offset.
func CheckSpan(record string, size int, offset uint64, n int) error {
	if err := CheckBase(record, offset); err != nil {
		return err
	}
	if offset > uint64(size) || uint64(size)-offset < uint64(n) {
		return &ViolationError{Record: record, Got: size, Want: int(offset) + n, Err: ErrSize}
	}
	return nil
}

// NewAligned allocates a zeroed host buffer of length n whose first byte
// is aligned to BaseAlignment.
func NewAligned(n int) []byte {
	raw := make([]byte, n+BaseAlignment-1)
	off := 0
	if r := uintptr(unsafe.Pointer(unsafe.SliceData(raw))) % BaseAlignment; r != 0 {
		off = int(BaseAlignment - r)
	}
	return raw[off : off+n : off+n]
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// AllFinite reports whether every value in vs is finite.
func AllFinite(vs ...float32) bool {
	for _, v := range vs {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}
