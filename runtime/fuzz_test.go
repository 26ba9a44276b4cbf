package utf8v_test

import (
	"testing"
	"unicode/utf8"

	utf8v "github.com/synadia-labs/utf8v.go/runtime"
)

// FuzzValid checks that Valid, ValidString and Validate never panic and
// agree with each other and with unicode/utf8.
func FuzzValid(f *testing.F) {
	f.Add([]byte("test"))
	f.Add([]byte("\xC3\xA9"))
	f.Add([]byte("\xF0\x9F\x98\x80"))
	f.Add([]byte("\xED\xA0\x80"))
	f.Add([]byte("\xE2\x82"))
	f.Add([]byte("abcdefgh\xF4\x90\x80\x80"))

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("panic validating % x: %v", data, r)
			}
		}()

		want := utf8.Valid(data)
		if got := utf8v.Valid(data); got != want {
			t.Fatalf("Valid(% x) = %v, want %v", data, got, want)
		}
		if got := utf8v.ValidString(string(data)); got != want {
			t.Fatalf("ValidString(% x) = %v, want %v", data, got, want)
		}
		err := utf8v.Validate(data)
		if (err == nil) != want {
			t.Fatalf("Validate(% x) = %v, want valid=%v", data, err, want)
		}
		if p := utf8v.ValidPrefix(data); want && p != len(data) || !want && p >= len(data) {
			t.Fatalf("ValidPrefix(% x) = %d (len %d, valid %v)", data, p, len(data), want)
		}
	})
}
