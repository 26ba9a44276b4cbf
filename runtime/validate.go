package utf8v

// Validate reports whether b is well-formed UTF-8. It returns nil for
// valid input (including empty input) and a *SequenceError for the first
// rejected code point otherwise.
//
// Validate drives CodePointLength and ValidCodePoint over b one code
// point at a time and stops at the first failure. It accepts exactly the
// inputs Valid accepts.
func Validate(b []byte) error {
	for i := 0; i < len(b); {
		n, err := checkAt(b, i)
		if err != nil {
			return &SequenceError{Offset: i, Len: n, Lead: b[i], cause: err}
		}
		i += n
	}
	return nil
}

// ValidateAll returns every ill-formed subpart of b, resuming the scan
// after each one. At most max errors are returned; max <= 0 means no
// limit. The result is nil for valid input.
func ValidateAll(b []byte, max int) []error {
	var errs []error
	for i := 0; i < len(b); {
		n, err := checkAt(b, i)
		if err != nil {
			errs = append(errs, &SequenceError{Offset: i, Len: n, Lead: b[i], cause: err})
			if max > 0 && len(errs) >= max {
				return errs
			}
		}
		i += n
	}
	return errs
}

// ValidPrefix returns the length of the longest prefix of b that is
// well-formed UTF-8.
func ValidPrefix(b []byte) int {
	i := 0
	for i < len(b) {
		n, err := checkAt(b, i)
		if err != nil {
			break
		}
		i += n
	}
	return i
}

// checkAt classifies and checks the code point starting at b[i].
func checkAt(b []byte, i int) (int, error) {
	n := CodePointLength(b[i])
	if n == InvalidLength {
		return 1, ErrBadLeadingByte
	}
	return checkCodePoint(b[i:], n)
}
