package scan

import (
	"encoding/binary"
	"fmt"
)

// CBOR major types (3 bits)
const (
	majorTypeUint   = 0 // unsigned integer
	majorTypeNegInt = 1 // negative integer
	majorTypeBytes  = 2 // byte string
	majorTypeText   = 3 // text string (UTF-8)
	majorTypeArray  = 4 // array
	majorTypeMap    = 5 // map
	majorTypeTag    = 6 // semantic tag
	majorTypeSimple = 7 // float, simple values, break
)

// Additional info values (5 bits)
const (
	addInfoDirect     = 23 // max direct value
	addInfoUint8      = 24 // 1-byte uint8 follows
	addInfoUint16     = 25 // 2-byte uint16 follows
	addInfoUint32     = 26 // 4-byte uint32 follows
	addInfoUint64     = 27 // 8-byte uint64 follows
	addInfoIndefinite = 31 // indefinite length (for bytes, text, array, map)
)

// Simple values in major type 7
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

var be = binary.BigEndian

func makeByte(majorType, addInfo uint8) byte {
	return byte((majorType << 5) | addInfo)
}

func getMajorType(b byte) uint8 {
	return (b >> 5) & 0x07
}

func getAddInfo(b byte) uint8 {
	return b & 0x1f
}

var breakByte = makeByte(majorTypeSimple, simpleBreak)

// readUint reads the argument of a head of the given major type.
// Indefinite lengths are rejected; callers check for them first.
func readUint(b []byte, major uint8) (uint64, []byte, error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}
	if got := getMajorType(b[0]); got != major {
		return 0, b, fmt.Errorf("%w: expected major type %d but got %d", ErrMalformed, major, got)
	}

	add := getAddInfo(b[0])
	switch {
	case add <= addInfoDirect:
		return uint64(add), b[1:], nil
	case add == addInfoUint8:
		if len(b) < 2 {
			return 0, b, ErrShortBytes
		}
		return uint64(b[1]), b[2:], nil
	case add == addInfoUint16:
		if len(b) < 3 {
			return 0, b, ErrShortBytes
		}
		return uint64(be.Uint16(b[1:])), b[3:], nil
	case add == addInfoUint32:
		if len(b) < 5 {
			return 0, b, ErrShortBytes
		}
		return uint64(be.Uint32(b[1:])), b[5:], nil
	case add == addInfoUint64:
		if len(b) < 9 {
			return 0, b, ErrShortBytes
		}
		return be.Uint64(b[1:]), b[9:], nil
	default:
		return 0, b, fmt.Errorf("%w: additional info %d on major type %d", ErrMalformed, add, major)
	}
}

// readChunks reads a definite or indefinite length byte or text string
// and returns its chunks without copying. An indefinite string is a
// series of definite strings of the same major type ended by a break.
func readChunks(b []byte, major uint8) (chunks [][]byte, rest []byte, err error) {
	if len(b) < 1 {
		return nil, b, ErrShortBytes
	}
	if getAddInfo(b[0]) != addInfoIndefinite {
		c, o, err := readDefinite(b, major)
		if err != nil {
			return nil, b, err
		}
		return [][]byte{c}, o, nil
	}
	if getMajorType(b[0]) != major {
		return nil, b, fmt.Errorf("%w: expected major type %d but got %d", ErrMalformed, major, getMajorType(b[0]))
	}

	p := b[1:]
	for {
		if len(p) < 1 {
			return nil, b, ErrShortBytes
		}
		if p[0] == breakByte {
			return chunks, p[1:], nil
		}
		// chunks must themselves be definite
		if getAddInfo(p[0]) == addInfoIndefinite {
			return nil, b, fmt.Errorf("%w: nested indefinite string chunk", ErrMalformed)
		}
		c, o, err := readDefinite(p, major)
		if err != nil {
			return nil, b, err
		}
		chunks = append(chunks, c)
		p = o
	}
}

func readDefinite(b []byte, major uint8) ([]byte, []byte, error) {
	sz, o, err := readUint(b, major)
	if err != nil {
		return nil, b, err
	}
	if uint64(len(o)) < sz {
		return nil, b, ErrShortBytes
	}
	return o[:sz], o[sz:], nil
}
