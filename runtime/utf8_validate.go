package utf8v

import "encoding/binary"

// asciiWord has the high bit set in every byte of a 64-bit word.
const asciiWord = 0x8080808080808080

// Valid reports whether b consists entirely of well-formed UTF-8 code
// points. Empty input is valid. A code point cut off by the end of b is
// invalid.
func Valid(b []byte) bool {
	// Skip leading ASCII eight bytes at a time.
	for len(b) >= 8 {
		if binary.LittleEndian.Uint64(b)&asciiWord != 0 {
			break
		}
		b = b[8:]
	}
	return validTable(b)
}

// ValidString reports whether s consists entirely of well-formed UTF-8
// code points.
func ValidString(s string) bool {
	for len(s) >= 8 {
		first32 := uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
		second32 := uint32(s[4]) | uint32(s[5])<<8 | uint32(s[6])<<16 | uint32(s[7])<<24
		if (first32|second32)&0x80808080 != 0 {
			break
		}
		s = s[8:]
	}
	return validTable(s)
}

// validTable scans p code point by code point using the first-byte table
// derived from CodePointLength and ValidCodePoint.
func validTable[T ~string | ~[]byte](p T) bool {
	n := len(p)
	for i := 0; i < n; {
		c := p[i]
		if c < RuneSelf {
			i++
			continue
		}
		x := first[c]
		size := int(x & sizeMask)
		if size == InvalidLength || size > n-i {
			return false
		}
		ar := acceptRanges[x>>acceptShift]
		if c := p[i+1]; c < ar.Lo || ar.Hi < c {
			return false
		}
		if size > 2 {
			if c := p[i+2]; c < LoCB || HiCB < c {
				return false
			}
		}
		if size > 3 {
			if c := p[i+3]; c < LoCB || HiCB < c {
				return false
			}
		}
		i += size
	}
	return true
}
