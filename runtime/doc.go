// Package utf8v validates byte sequences against the UTF-8 grammar of the
// Unicode standard.
//
// The package is built from three small pieces:
//   - CodePointLength classifies a lead byte into a declared length (1-4).
//   - ValidCodePoint checks a single code point of a declared length,
//     rejecting bad continuation bytes, overlong forms, UTF-16 surrogates
//     and values above U+10FFFF.
//   - Valid / ValidString / Validate drive the two across a whole buffer.
//
// Valid and ValidString answer with a bool and never allocate. Validate
// runs the same scan and, on failure, returns a *SequenceError carrying
// the offset of the rejected code point and one of the sentinel causes
// (ErrTruncated, ErrBadContinuation, ErrOverlong, ErrSurrogate,
// ErrOutOfRange, ErrBadLeadingByte), so callers can use errors.Is.
//
// All functions are pure: they never mutate their input and hold no
// state, so they are safe for concurrent use.
//
// This is not a Unicode library. There is no decoding to runes, no
// normalization and no streaming mode: a sequence cut off at the end of
// the buffer is invalid, not incomplete.
package utf8v

//go:generate go run ./tablegen -o table_gen.go
