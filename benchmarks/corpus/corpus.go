// Package corpus builds the inputs shared by the benchmarks and the
// utf8-bench table runner.
package corpus

import (
	"strconv"
	"strings"
)

// DefaultSize is the approximate size in bytes of each text sample.
const DefaultSize = 64 << 10

// Sample is a named input for validation benchmarks.
type Sample struct {
	Name  string
	Data  []byte
	Valid bool
}

var fragments = []struct {
	name string
	text string
}{
	{"ascii", "The quick brown fox jumps over the lazy dog. "},
	{"latin", "Příliš žluťoučký kůň úpěl ďábelské ódy. "},
	{"cjk", "色は匂へど散りぬるを我が世誰ぞ常ならむ。"},
	{"emoji", "\U0001F600\U0001F680\U0001F30D\U0001F389 "},
}

// Samples returns one valid sample per script, each about size bytes,
// plus an ASCII sample with a surrogate at the very end.
func Samples(size int) []Sample {
	if size <= 0 {
		size = DefaultSize
	}
	out := make([]Sample, 0, len(fragments)+1)
	for _, f := range fragments {
		out = append(out, Sample{Name: f.name, Data: repeat(f.text, size), Valid: true})
	}
	tail := append(repeat(fragments[0].text, size), 0xED, 0xA0, 0x80)
	out = append(out, Sample{Name: "invalid_tail", Data: tail, Valid: false})
	return out
}

func repeat(s string, size int) []byte {
	n := size / len(s)
	if n < 1 {
		n = 1
	}
	return []byte(strings.Repeat(s, n))
}

// Document returns a nested document with n records, each holding a mix
// of text in several scripts. Map keys are strings so the same value can
// be encoded as CBOR and MessagePack.
func Document(n int) map[string]any {
	records := make([]any, 0, n)
	for i := 0; i < n; i++ {
		f := fragments[i%len(fragments)]
		records = append(records, map[string]any{
			"id":     "record-" + strconv.Itoa(i),
			"script": f.name,
			"text":   f.text,
			"tags":   []any{"a", "ü", "日本"},
		})
	}
	return map[string]any{"records": records}
}
