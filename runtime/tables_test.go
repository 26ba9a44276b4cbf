package utf8v

import "testing"

// TestGeneratedTables guards against table_gen.go drifting from the
// reference classifier and validator.
func TestGeneratedTables(t *testing.T) {
	derived, ranges := DeriveTables()
	if derived != first {
		for b := range first {
			if derived[b] != first[b] {
				t.Errorf("first[%#x] = %#x, derived %#x", b, first[b], derived[b])
			}
		}
		t.Fatalf("table_gen.go is stale; run go generate")
	}
	if len(ranges) != len(acceptRanges) {
		t.Fatalf("got %d accept ranges, derived %d", len(acceptRanges), len(ranges))
	}
	for i := range ranges {
		if ranges[i] != acceptRanges[i] {
			t.Fatalf("acceptRanges[%d] = %+v, derived %+v", i, acceptRanges[i], ranges[i])
		}
	}
}

func TestCheckCodePointSubpart(t *testing.T) {
	cases := []struct {
		data []byte
		n    int
		want int
		err  error
	}{
		{[]byte{0xC3, 0xA9}, 2, 2, nil},
		{[]byte{0xF0, 0x9F, 0x98, 0x80}, 4, 4, nil},
		{[]byte{0xF0, 0x9F, 0x98, 0x41}, 4, 3, ErrBadContinuation},
		{[]byte{0xF0, 0x9F}, 4, 2, ErrTruncated},
		{[]byte{0xE0, 0x9F, 0x80}, 3, 1, ErrOverlong},
		{[]byte{0x41}, 9, 1, ErrBadLeadingByte},
	}
	for _, c := range cases {
		got, err := checkCodePoint(c.data, c.n)
		if got != c.want || err != c.err {
			t.Fatalf("checkCodePoint(% x, %d) = %d, %v; want %d, %v", c.data, c.n, got, err, c.want, c.err)
		}
	}
}
