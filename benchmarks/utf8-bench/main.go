package main

import (
	"fmt"
	"os"
	"testing"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/kong"

	"github.com/synadia-labs/utf8v.go/benchmarks/corpus"
	utf8v "github.com/synadia-labs/utf8v.go/runtime"
)

type benchResult struct {
	Sample        string
	Validator     string
	Size          int
	NsPerOp       float64
	MBPerSec      float64
	AllocsPerOp   float64
	MemBytesPerOp float64
	Err           error
}

type validator struct {
	name  string
	valid func([]byte) bool
}

var validators = []validator{
	{name: "utf8v.Valid", valid: utf8v.Valid},
	{name: "utf8v.Validate", valid: func(b []byte) bool { return utf8v.Validate(b) == nil }},
	{name: "unicode/utf8.Valid", valid: utf8.Valid},
}

// CLI defines the utf8-bench command-line interface.
type CLI struct {
	Size int `short:"n" help:"Approximate size of each sample in bytes" default:"65536"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("utf8-bench"),
		kong.Description("Compare UTF-8 validation throughput across validators."),
	)

	fmt.Fprintf(os.Stderr, "Building samples (size=%d) ...\n", cli.Size)
	samples := corpus.Samples(cli.Size)

	rows := make([]benchResult, 0, len(samples)*len(validators))
	for _, s := range samples {
		for _, v := range validators {
			rows = append(rows, runValidatorBench(s, v))
		}
	}
	printTable(rows, cli.Size)
}

func runValidatorBench(s corpus.Sample, v validator) benchResult {
	res := benchResult{Sample: s.Name, Validator: v.name, Size: len(s.Data)}
	if got := v.valid(s.Data); got != s.Valid {
		res.Err = fmt.Errorf("verdict %v, want %v", got, s.Valid)
		return res
	}

	br := testing.Benchmark(func(b *testing.B) {
		b.SetBytes(int64(len(s.Data)))
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = v.valid(s.Data)
		}
	})
	res.NsPerOp = float64(br.NsPerOp())
	res.AllocsPerOp = float64(br.AllocsPerOp())
	if br.N > 0 {
		res.MemBytesPerOp = float64(br.MemBytes) / float64(br.N)
	}
	if res.NsPerOp > 0 {
		res.MBPerSec = float64(res.Size) * (1e9 / res.NsPerOp) / (1024 * 1024)
	}
	return res
}

func printTable(rows []benchResult, size int) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# UTF-8 Validation Benchmarks (size=%d)\n", size)
	fmt.Fprintf(tw, "# Timestamp: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintln(tw, "Sample\tValidator\tBytes/op\tMB/s\tns/op\tAllocs/op\tMem/op (B)\tError")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%d\t-\t-\t-\t-\t%v\n", r.Sample, r.Validator, r.Size, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.0f\t%.2f\t%.0f\t-\n", r.Sample, r.Validator, r.Size, r.MBPerSec, r.NsPerOp, r.AllocsPerOp, r.MemBytesPerOp)
	}
	_ = tw.Flush()
}
