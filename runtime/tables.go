package utf8v

// AcceptRange gives the range of valid values for the second byte of a
// multi-byte code point.
type AcceptRange struct {
	Lo uint8 // lowest value for second byte.
	Hi uint8 // highest value for second byte.
}

// DeriveTables computes the first-byte table and accept ranges used by
// Valid from CodePointLength and ValidCodePoint. It is what tablegen
// writes to table_gen.go, and tests compare the two.
//
// Each first-byte entry holds the declared length in its low bits (0 when
// no code point can start with the byte) and an index into the returned
// ranges in its high nibble. Ranges are numbered in order of first use.
func DeriveTables() (first [byteValueCount]uint8, ranges []AcceptRange) {
	for b := 0; b < byteValueCount; b++ {
		lead := byte(b)
		n := CodePointLength(lead)
		if n == InvalidLength {
			continue
		}
		if n == 1 {
			if ValidCodePoint([]byte{lead}, 1) {
				first[b] = 1
			}
			continue
		}

		// Probe every second byte with well-formed trailing bytes.
		p := []byte{lead, 0, LoCB, LoCB}[:n]
		var ar AcceptRange
		found := false
		for s := 0; s < byteValueCount; s++ {
			p[1] = byte(s)
			if !ValidCodePoint(p, n) {
				continue
			}
			if !found {
				ar.Lo = byte(s)
				found = true
			}
			ar.Hi = byte(s)
		}
		if !found {
			continue
		}

		idx := -1
		for i, r := range ranges {
			if r == ar {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(ranges)
			ranges = append(ranges, ar)
		}
		first[b] = uint8(idx)<<acceptShift | uint8(n)
	}
	return first, ranges
}
