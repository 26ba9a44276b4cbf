package scan

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tinylib/msgp/msgp"
)

// MsgPack checks every str value and str map key in the MessagePack
// document (or sequence of documents, see Options.Sequence) in data. It
// returns the ill-formed strings sorted by path.
func MsgPack(data []byte, opts Options) ([]Finding, error) {
	w := newWalker(opts)
	rest := data
	for i := 0; ; i++ {
		if opts.Sequence && len(rest) == 0 {
			break
		}
		var err error
		rest, err = w.walkMsgp(rest, rootPath(opts, i), 0, false)
		if err != nil {
			if errors.Is(err, errLimit) {
				break
			}
			sortFindings(w.findings)
			return w.findings, fmt.Errorf("scan: msgpack item %d: %w", i, err)
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

// walkMsgp checks the next object in b and returns the remaining bytes.
// key is set while walking inside a map key.
func (w *walker) walkMsgp(b []byte, path []string, depth int, key bool) ([]byte, error) {
	if depth > w.maxDepth {
		return b, ErrMaxDepthExceeded
	}
	if len(b) == 0 {
		return b, msgp.ErrShortBytes
	}

	switch msgp.NextType(b) {
	case msgp.StrType:
		s, o, err := msgp.ReadStringZC(b)
		if err != nil {
			return b, err
		}
		_, err = w.check(s, 0, path, key)
		return o, err

	case msgp.ArrayType:
		sz, o, err := msgp.ReadArrayHeaderBytes(b)
		if err != nil {
			return b, err
		}
		for i := uint32(0); i < sz; i++ {
			o, err = w.walkMsgp(o, append(path, strconv.FormatUint(uint64(i), 10)), depth+1, key)
			if err != nil {
				return o, err
			}
		}
		return o, nil

	case msgp.MapType:
		sz, o, err := msgp.ReadMapHeaderBytes(b)
		if err != nil {
			return b, err
		}
		for i := uint32(0); i < sz; i++ {
			var seg string
			if msgp.NextType(o) == msgp.StrType {
				var k []byte
				k, o, err = msgp.ReadStringZC(o)
				if err != nil {
					return o, err
				}
				seg = keySegment(k)
				if _, err := w.check(k, 0, append(path, seg), true); err != nil {
					return o, err
				}
			} else {
				// Other keys are walked as keys so strings nested in
				// array or map keys are reported too.
				seg = msgpKeySegment(o, int(i))
				o, err = w.walkMsgp(o, append(path, seg), depth+1, true)
				if err != nil {
					return o, err
				}
			}
			o, err = w.walkMsgp(o, append(path, seg), depth+1, key)
			if err != nil {
				return o, err
			}
		}
		return o, nil

	case msgp.InvalidType:
		return b, fmt.Errorf("scan: invalid msgpack prefix 0x%02x", b[0])
	}
	return msgp.Skip(b)
}

// msgpKeySegment renders a non-str map key as a path segment. Integer keys
// print as numbers; anything else is named by its entry index.
func msgpKeySegment(b []byte, i int) string {
	switch msgp.NextType(b) {
	case msgp.IntType:
		if n, _, err := msgp.ReadInt64Bytes(b); err == nil {
			return strconv.FormatInt(n, 10)
		}
	case msgp.UintType:
		if n, _, err := msgp.ReadUint64Bytes(b); err == nil {
			return strconv.FormatUint(n, 10)
		}
	}
	return "#" + strconv.Itoa(i)
}
