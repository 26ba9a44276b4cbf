package utf8v

// CodePointLength returns the length in bytes of the code point that b
// would start, or InvalidLength if b cannot start a code point (a
// continuation byte, or 0xF8 and above).
//
// Only the bit pattern of b is examined; lead bytes that pass here but
// can never appear in well-formed UTF-8 (0xC0, 0xC1, 0xF5..0xF7) are
// rejected by ValidCodePoint.
func CodePointLength(b byte) int {
	switch {
	case b < RuneSelf:
		return 1
	case b&maskx == tx:
		return InvalidLength
	case b&mask2 == t2:
		return 2
	case b&mask3 == t3:
		return 3
	case b&mask4 == t4:
		return 4
	}
	return InvalidLength
}

// ValidCodePoint reports whether p starts with a well-formed code point
// of declared length n, where n was obtained from CodePointLength(p[0]).
// A length outside 1..UTFMax, or a p shorter than n, is invalid. Bytes of
// p past n are never read.
func ValidCodePoint(p []byte, n int) bool {
	_, err := checkCodePoint(p, n)
	return err == nil
}

// checkCodePoint validates the code point of declared length n at the
// start of p. On success it returns n. On failure it returns the sentinel
// cause and the length of the maximal ill-formed prefix, which is always
// at least 1 so that a caller can resume scanning after it.
func checkCodePoint(p []byte, n int) (int, error) {
	if len(p) == 0 {
		return 0, ErrTruncated
	}
	if n < 1 || n > UTFMax {
		return 1, ErrBadLeadingByte
	}
	lead := p[0]
	switch {
	case lead >= LoCB && lead <= HiCB, lead > MaxLeadByte:
		return 1, ErrBadLeadingByte
	case lead == 0xC0 || lead == 0xC1:
		return 1, ErrOverlong
	}
	if n == 1 {
		return 1, nil
	}
	if len(p) < 2 {
		return 1, ErrTruncated
	}

	lo, hi, cause := secondByteRange(lead)
	c := p[1]
	if c < LoCB || c > HiCB {
		return 1, ErrBadContinuation
	}
	if c < lo || c > hi {
		return 1, cause
	}

	for i := 2; i < n; i++ {
		if i >= len(p) {
			return i, ErrTruncated
		}
		if c := p[i]; c < LoCB || c > HiCB {
			return i, ErrBadContinuation
		}
	}
	return n, nil
}

// secondByteRange returns the accepted range of the byte following lead,
// and the cause reported when it falls outside the range but is still a
// continuation byte.
func secondByteRange(lead byte) (lo, hi byte, cause error) {
	switch lead {
	case leadOverlong3:
		return 0xA0, HiCB, ErrOverlong
	case leadSurrogate:
		return LoCB, 0x9F, ErrSurrogate
	case leadOverlong4:
		return 0x90, HiCB, ErrOverlong
	case leadMaxPlane16:
		return LoCB, 0x8F, ErrOutOfRange
	}
	return LoCB, HiCB, nil
}
