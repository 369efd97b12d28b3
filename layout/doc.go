// Package layout holds the alignment discipline shared by every record that
// crosses the host/shader boundary: 16-byte base alignment, explicit
// reserved spans, little-endian scalar encoding and column-major matrices.
//
// Two error classes are reported here. Layout violations (misaligned base,
// wrong length) are [ViolationError] values wrapping [ErrMisaligned] or
// [ErrSize]. Rejected contents are [ConfigError] values wrapping
// [ErrInvalidConfig]. Past this boundary the contract is trust-based: the
// shader has no runtime check.
package layout
