package scan

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// CBOR checks every text string in the CBOR document (or sequence of
// documents, see Options.Sequence) in data. It returns the ill-formed
// strings sorted by path. A malformed document is reported as an error
// together with the findings collected before it.
//
// The document is walked in its encoded form: every chunk of an
// indefinite-length string is checked on its own, and every map entry is
// visited even when keys repeat.
func CBOR(data []byte, opts Options) ([]Finding, error) {
	w := newWalker(opts)
	rest := data
	for i := 0; ; i++ {
		if opts.Sequence && len(rest) == 0 {
			break
		}
		var err error
		rest, err = w.walkCBOR(rest, rootPath(opts, i), 0, false)
		if err != nil {
			if errors.Is(err, errLimit) {
				break
			}
			sortFindings(w.findings)
			return w.findings, fmt.Errorf("scan: cbor item %d: %w", i, err)
		}
		if !opts.Sequence {
			if len(rest) > 0 {
				sortFindings(w.findings)
				return w.findings, ErrTrailingData
			}
			break
		}
	}
	sortFindings(w.findings)
	return w.findings, nil
}

// walkCBOR checks the next data item in b and returns the bytes after it.
// key is set while walking inside a map key.
func (w *walker) walkCBOR(b []byte, path []string, depth int, key bool) ([]byte, error) {
	if depth > w.maxDepth {
		return b, ErrMaxDepthExceeded
	}
	if len(b) < 1 {
		return b, ErrShortBytes
	}
	lead := b[0]
	major := getMajorType(lead)
	add := getAddInfo(lead)

	// Reserved additional info values 28, 29, 30 are not well-formed
	if add == 28 || add == 29 || add == 30 {
		return b, fmt.Errorf("%w: reserved additional info %d", ErrMalformed, add)
	}

	switch major {
	case majorTypeUint, majorTypeNegInt:
		_, o, err := readUint(b, major)
		return o, err

	case majorTypeTag:
		n, o, err := readUint(b, major)
		if err != nil {
			return b, err
		}
		return w.walkCBOR(o, append(path, "tag"+strconv.FormatUint(n, 10)), depth+1, key)

	case majorTypeBytes:
		_, o, err := readChunks(b, majorTypeBytes)
		return o, err

	case majorTypeText:
		chunks, o, err := readChunks(b, majorTypeText)
		if err != nil {
			return b, err
		}
		return o, w.checkChunks(chunks, path, key)

	case majorTypeArray:
		if add == addInfoIndefinite {
			p := b[1:]
			for i := 0; ; i++ {
				if len(p) < 1 {
					return b, ErrShortBytes
				}
				if p[0] == breakByte {
					return p[1:], nil
				}
				var err error
				p, err = w.walkCBOR(p, append(path, strconv.Itoa(i)), depth+1, key)
				if err != nil {
					return p, err
				}
			}
		}
		sz, p, err := readUint(b, majorTypeArray)
		if err != nil {
			return b, err
		}
		for i := uint64(0); i < sz; i++ {
			p, err = w.walkCBOR(p, append(path, strconv.FormatUint(i, 10)), depth+1, key)
			if err != nil {
				return p, err
			}
		}
		return p, nil

	case majorTypeMap:
		if add == addInfoIndefinite {
			p := b[1:]
			for i := 0; ; i++ {
				if len(p) < 1 {
					return b, ErrShortBytes
				}
				if p[0] == breakByte {
					return p[1:], nil
				}
				var err error
				p, err = w.walkCBOREntry(p, path, i, depth, key)
				if err != nil {
					return p, err
				}
			}
		}
		sz, p, err := readUint(b, majorTypeMap)
		if err != nil {
			return b, err
		}
		for i := uint64(0); i < sz; i++ {
			p, err = w.walkCBOREntry(p, path, int(i), depth, key)
			if err != nil {
				return p, err
			}
		}
		return p, nil

	case majorTypeSimple:
		switch add {
		case simpleFalse, simpleTrue, simpleNull, simpleUndefined:
			return b[1:], nil
		case simpleFloat16:
			if len(b) < 3 {
				return b, ErrShortBytes
			}
			return b[3:], nil
		case simpleFloat32:
			if len(b) < 5 {
				return b, ErrShortBytes
			}
			return b[5:], nil
		case simpleFloat64:
			if len(b) < 9 {
				return b, ErrShortBytes
			}
			return b[9:], nil
		case addInfoUint8: // one-byte simple value (0xf8 xx)
			if len(b) < 2 {
				return b, ErrShortBytes
			}
			return b[2:], nil
		default:
			if add < 20 { // unassigned simple values are still well-formed
				return b[1:], nil
			}
		}
	}
	return b, fmt.Errorf("%w: unexpected initial byte 0x%02x", ErrMalformed, lead)
}

// walkCBOREntry checks the i'th key/value pair of a map. Text keys are
// checked and name the path segment of their value. Other keys are walked
// as keys themselves so text nested inside them is reported too.
func (w *walker) walkCBOREntry(b []byte, path []string, i, depth int, key bool) ([]byte, error) {
	if len(b) < 1 {
		return b, ErrShortBytes
	}

	var (
		seg string
		o   []byte
		err error
	)
	if getMajorType(b[0]) == majorTypeText {
		var chunks [][]byte
		chunks, o, err = readChunks(b, majorTypeText)
		if err != nil {
			return b, err
		}
		seg = keySegment(bytes.Join(chunks, nil))
		if err := w.checkChunks(chunks, append(path, seg), true); err != nil {
			return o, err
		}
	} else {
		seg = cborKeySegment(b, i)
		o, err = w.walkCBOR(b, append(path, seg), depth+1, true)
		if err != nil {
			return o, err
		}
	}
	return w.walkCBOR(o, append(path, seg), depth+1, key)
}

// checkChunks checks the chunks of one text string, reporting at most one
// finding with its offset counted from the start of the whole string.
// A code point split across two chunks is ill-formed.
func (w *walker) checkChunks(chunks [][]byte, path []string, key bool) error {
	base := 0
	for _, c := range chunks {
		found, err := w.check(c, base, path, key)
		if found || err != nil {
			return err
		}
		base += len(c)
	}
	return nil
}

// cborKeySegment renders a non-text map key as a path segment. Integer
// keys print as numbers and byte strings as h'..'; anything else is named
// by its entry index.
func cborKeySegment(b []byte, i int) string {
	switch getMajorType(b[0]) {
	case majorTypeUint:
		if n, _, err := readUint(b, majorTypeUint); err == nil {
			return strconv.FormatUint(n, 10)
		}
	case majorTypeNegInt:
		if n, _, err := readUint(b, majorTypeNegInt); err == nil {
			v := new(big.Int).SetUint64(n)
			return v.Neg(v).Sub(v, big.NewInt(1)).String()
		}
	case majorTypeBytes:
		if chunks, _, err := readChunks(b, majorTypeBytes); err == nil {
			return fmt.Sprintf("h'%x'", bytes.Join(chunks, nil))
		}
	}
	return "#" + strconv.Itoa(i)
}
