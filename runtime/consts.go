package utf8v

import "math"

const (
	byteValueCount = math.MaxUint8 + 1

	// InvalidLength is returned by CodePointLength for a byte that
	// cannot start a code point.
	InvalidLength = 0

	// UTFMax is the maximum number of bytes of a UTF-8 encoded code point.
	UTFMax = 4

	// RuneSelf is the first byte value that is not a single-byte code point.
	RuneSelf = 0x80

	// MaxLeadByte is the largest lead byte of a code point at or below
	// U+10FFFF.
	MaxLeadByte = 0xF4
)

// The default lowest and highest continuation byte.
const (
	LoCB = 0x80 // 1000 0000
	HiCB = 0xBF // 1011 1111
)

// Lead byte patterns and the masks selecting them.
const (
	maskx = 0xC0 // 11xx xxxx
	mask2 = 0xE0 // 111x xxxx
	mask3 = 0xF0 // 1111 xxxx
	mask4 = 0xF8 // 1111 1xxx

	tx = 0x80 // 10xx xxxx
	t2 = 0xC0 // 110x xxxx
	t3 = 0xE0 // 1110 xxxx
	t4 = 0xF0 // 1111 0xxx
)

// Lead bytes whose second byte has a narrower range than LoCB..HiCB.
const (
	leadOverlong3  = 0xE0 // second byte >= 0xA0
	leadSurrogate  = 0xED // second byte <= 0x9F
	leadOverlong4  = 0xF0 // second byte >= 0x90
	leadMaxPlane16 = 0xF4 // second byte <= 0x8F
)

// Layout of an entry in the first-byte table: the low bits hold the
// declared length (0 for invalid), the high nibble indexes acceptRanges.
const (
	sizeMask    = 7
	acceptShift = 4
)
