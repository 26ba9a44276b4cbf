package benchmarks

import (
	"testing"
	"unicode/utf8"

	"github.com/synadia-labs/utf8v.go/benchmarks/corpus"
	utf8v "github.com/synadia-labs/utf8v.go/runtime"
)

// Validation throughput of this runtime against unicode/utf8 over the
// same samples.

func BenchmarkValid(b *testing.B) {
	for _, s := range corpus.Samples(corpus.DefaultSize) {
		b.Run(s.Name, func(b *testing.B) {
			b.SetBytes(int64(len(s.Data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if utf8v.Valid(s.Data) != s.Valid {
					b.Fatalf("Valid(%s) != %v", s.Name, s.Valid)
				}
			}
		})
	}
}

func BenchmarkStdlibValid(b *testing.B) {
	for _, s := range corpus.Samples(corpus.DefaultSize) {
		b.Run(s.Name, func(b *testing.B) {
			b.SetBytes(int64(len(s.Data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if utf8.Valid(s.Data) != s.Valid {
					b.Fatalf("utf8.Valid(%s) != %v", s.Name, s.Valid)
				}
			}
		})
	}
}

func BenchmarkValidate(b *testing.B) {
	for _, s := range corpus.Samples(corpus.DefaultSize) {
		b.Run(s.Name, func(b *testing.B) {
			b.SetBytes(int64(len(s.Data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if (utf8v.Validate(s.Data) == nil) != s.Valid {
					b.Fatalf("Validate(%s) disagrees", s.Name)
				}
			}
		})
	}
}

func BenchmarkValidString(b *testing.B) {
	for _, s := range corpus.Samples(corpus.DefaultSize) {
		str := string(s.Data)
		b.Run(s.Name, func(b *testing.B) {
			b.SetBytes(int64(len(str)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if utf8v.ValidString(str) != s.Valid {
					b.Fatalf("ValidString(%s) != %v", s.Name, s.Valid)
				}
			}
		})
	}
}
