package utf8v

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTruncated is returned when a code point's declared length runs
	// past the end of the input.
	ErrTruncated error = errors.New("utf8v: truncated code point")

	// ErrBadContinuation is returned when a byte inside a multi-byte code
	// point is not in 0x80..0xBF.
	ErrBadContinuation error = errors.New("utf8v: invalid continuation byte")

	// ErrOverlong is returned for a code point encoded with more bytes
	// than it needs (lead 0xC0/0xC1, 0xE0 below 0xA0, 0xF0 below 0x90).
	ErrOverlong error = errors.New("utf8v: overlong encoding")

	// ErrSurrogate is returned for an encoded UTF-16 surrogate
	// (U+D800..U+DFFF), which UTF-8 forbids.
	ErrSurrogate error = errors.New("utf8v: surrogate code point")

	// ErrOutOfRange is returned for a code point above U+10FFFF.
	ErrOutOfRange error = errors.New("utf8v: code point above U+10FFFF")

	// ErrBadLeadingByte is returned when a byte that cannot start a code
	// point (a continuation byte, or 0xF5..0xFF) is found at a code point
	// boundary.
	ErrBadLeadingByte error = errors.New("utf8v: invalid leading byte")
)

// contextError allows errors to be enhanced with additional context
// about their origin, such as the path of a string inside a document.
type contextError interface {
	error

	// withContext must not modify the error instance - it must clone and
	// return a new error with the context added.
	withContext(ctx string) error
}

// SequenceError describes the first ill-formed code point in an input.
// Its cause is one of the package sentinels and can be matched with
// errors.Is.
type SequenceError struct {
	Offset int    // byte offset of the rejected code point
	Len    int    // length of the maximal ill-formed subpart at Offset
	Lead   byte   // byte at Offset
	cause  error  // one of the Err* sentinels
	ctx    string // optional location, e.g. a document path
}

// Error implements the error interface
func (e *SequenceError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.cause.Error())
	sb.WriteString(" 0x")
	sb.WriteString(strconv.FormatUint(uint64(e.Lead), 16))
	sb.WriteString(" at offset ")
	sb.WriteString(strconv.Itoa(e.Offset))
	if e.ctx != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.ctx)
	}
	return sb.String()
}

// Unwrap returns the sentinel cause.
func (e *SequenceError) Unwrap() error { return e.cause }

// Reason returns the cause without the "utf8v: " prefix, suitable for
// reports.
func (e *SequenceError) Reason() string {
	return strings.TrimPrefix(e.cause.Error(), "utf8v: ")
}

// Context returns the location attached with WrapError, if any.
func (e *SequenceError) Context() string { return e.ctx }

func (e *SequenceError) withContext(ctx string) error {
	o := *e
	o.ctx = addCtx(o.ctx, ctx)
	return &o
}

// Cause returns the underlying cause of an error that has been wrapped
// with additional context.
func Cause(e error) error {
	switch e := e.(type) {
	case errWrapped:
		if e.cause != nil {
			return e.cause
		}
	case *SequenceError:
		return e.cause
	}
	return e
}

// WrapError wraps an error with additional context that identifies where
// the problem was found. Underlying errors can be retrieved using Cause().
//
// The input error is not modified - a new error is returned.
func WrapError(err error, ctx ...any) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case contextError:
		return e.withContext(ctxString(ctx))
	default:
		return errWrapped{cause: err, ctx: ctxString(ctx)}
	}
}

// ctxString joins context elements into a path, innermost last.
func ctxString(ctx []any) string {
	out := ""
	for i := len(ctx) - 1; i >= 0; i-- {
		out = addCtx(out, fmt.Sprint(ctx[i]))
	}
	return out
}

func addCtx(ctx, add string) string {
	if ctx != "" {
		return add + "/" + ctx
	}
	return add
}

// errWrapped allows arbitrary errors passed to WrapError to be enhanced with
// context and unwrapped with Cause()
type errWrapped struct {
	cause error
	ctx   string
}

func (e errWrapped) Error() string {
	if e.ctx != "" {
		return e.cause.Error() + " at " + e.ctx
	}
	return e.cause.Error()
}

// Unwrap returns the cause.
func (e errWrapped) Unwrap() error { return e.cause }

func (e errWrapped) withContext(ctx string) error {
	e.ctx = addCtx(e.ctx, ctx)
	return e
}
