// Package scan checks that every text string inside a structured
// document is well-formed UTF-8.
//
// CBOR documents are walked in their encoded form, checking every text
// chunk for well-formedness along the way. MessagePack documents are
// walked with github.com/tinylib/msgp. Ill-formed strings are reported
// with their location instead of failing the whole walk. Map keys are
// checked as well as values, including text nested inside array or map
// keys; byte strings are not text and are skipped.
package scan

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	utf8v "github.com/synadia-labs/utf8v.go/runtime"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 32

var (
	// ErrMaxDepthExceeded is returned when a document nests deeper than
	// Options.MaxDepth.
	ErrMaxDepthExceeded error = errors.New("scan: max depth exceeded")

	// ErrTrailingData is returned when bytes follow a single document and
	// Options.Sequence is not set.
	ErrTrailingData error = errors.New("scan: trailing data after document")

	// ErrShortBytes is returned when a CBOR item runs past the end of the
	// input.
	ErrShortBytes error = errors.New("scan: too few bytes left to read object")

	// ErrMalformed is returned for a CBOR item that is not well-formed
	// (reserved additional info, a stray break, a bad string chunk).
	ErrMalformed error = errors.New("scan: malformed cbor item")

	// errLimit stops a walk once Options.Limit findings have been collected.
	errLimit = errors.New("scan: finding limit reached")
)

// Options configures a scan.
type Options struct {
	// Sequence treats the input as a sequence of concatenated documents
	// (RFC 8742 for CBOR). Paths are then prefixed with the item index.
	Sequence bool
	// MaxDepth limits nesting of arrays, maps and tags.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// Limit stops the scan after this many findings. Zero means no limit.
	Limit int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Finding is an ill-formed text string found in a document.
type Finding struct {
	// Path locates the string: map keys and array indexes joined by "/".
	// It is empty for a top-level string.
	Path string `json:"path" cbor:"1,keyasint"`
	// Key is set when the string is a map key rather than a value.
	Key bool `json:"key,omitempty" cbor:"2,keyasint,omitempty"`
	// Offset is the byte offset of the rejected code point in the string.
	Offset int `json:"offset" cbor:"3,keyasint"`
	// Reason names the rejection, e.g. "surrogate code point".
	Reason string `json:"reason" cbor:"4,keyasint"`
}

func (f Finding) String() string {
	path := f.Path
	if path == "" {
		path = "(root)"
	}
	if f.Key {
		path += " (key)"
	}
	return path + ": " + f.Reason + " at offset " + strconv.Itoa(f.Offset)
}

// walker accumulates findings for one scan.
type walker struct {
	findings []Finding
	limit    int
	maxDepth int
}

func newWalker(opts Options) *walker {
	return &walker{limit: opts.Limit, maxDepth: opts.maxDepth()}
}

// check validates one string and records a finding when it is ill-formed.
// base is added to the reported offset, for strings checked in chunks.
// It reports whether a finding was recorded and returns errLimit once the
// configured number of findings is reached.
func (w *walker) check(s []byte, base int, path []string, key bool) (bool, error) {
	err := utf8v.Validate(s)
	if err == nil {
		return false, nil
	}
	ctx := make([]any, len(path))
	for i, p := range path {
		ctx[i] = p
	}
	var se *utf8v.SequenceError
	if !errors.As(utf8v.WrapError(err, ctx...), &se) {
		return false, fmt.Errorf("scan: unexpected validation error: %w", err)
	}
	w.findings = append(w.findings, Finding{
		Path:   se.Context(),
		Key:    key,
		Offset: base + se.Offset,
		Reason: se.Reason(),
	})
	if w.limit > 0 && len(w.findings) >= w.limit {
		return true, errLimit
	}
	return true, nil
}

// keySegment renders a string map key as a path segment. Ill-formed keys
// are quoted so the path itself stays printable.
func keySegment(k []byte) string {
	if utf8v.Valid(k) {
		return string(k)
	}
	return strconv.Quote(string(k))
}

// rootPath returns the path prefix of the i'th top-level item.
func rootPath(opts Options, i int) []string {
	if !opts.Sequence {
		return nil
	}
	return []string{strconv.Itoa(i)}
}

// sortFindings orders findings by path so reports are stable regardless of
// map iteration order.
func sortFindings(fs []Finding) {
	slices.SortStableFunc(fs, func(a, b Finding) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if a.Key != b.Key {
			if a.Key {
				return -1
			}
			return 1
		}
		return a.Offset - b.Offset
	})
}
