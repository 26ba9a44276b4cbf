// Command tablegen writes the first-byte table used by the fast path of
// utf8v.Valid. The table is derived from utf8v.CodePointLength and
// utf8v.ValidCodePoint, so the fast path accepts exactly what the
// reference validator accepts.
//
// Run it through go generate from the runtime directory.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/tools/imports"

	utf8v "github.com/synadia-labs/utf8v.go/runtime"
)

// CLI defines the tablegen command-line interface.
type CLI struct {
	Output  string `short:"o" help:"Output file" default:"table_gen.go" type:"path"`
	Package string `short:"p" help:"Package name of the generated file" default:"utf8v"`
	DryRun  bool   `short:"n" help:"Print the generated source instead of writing it"`
}

func main() {
	log.SetPrefix("tablegen: ")
	log.SetFlags(0)

	var cli CLI
	kong.Parse(&cli,
		kong.Name("tablegen"),
		kong.Description("Generate the UTF-8 first-byte table."),
	)

	src, err := generate(cli.Output, cli.Package)
	if err != nil {
		log.Fatal(err)
	}
	if cli.DryRun {
		_, _ = os.Stdout.Write(src)
		return
	}

	log.Printf("Writing to %s", cli.Output)
	if err := os.WriteFile(cli.Output, src, 0o644); err != nil {
		log.Fatal(err)
	}
}

// generate renders and formats the table source.
func generate(filename, pkg string) ([]byte, error) {
	first, ranges := utf8v.DeriveTables()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by tablegen. DO NOT EDIT.\n\npackage %s\n\n", pkg)

	buf.WriteString("// first holds, for each byte, the declared length of the code point it\n")
	buf.WriteString("// starts (low bits, 0 for invalid) and an acceptRanges index (high nibble).\n")
	buf.WriteString("var first = [256]uint8{\n")
	buf.WriteString("\t// 0     1     2     3     4     5     6     7     8     9     A     B     C     D     E     F\n")
	for row := 0; row < len(first); row += 16 {
		buf.WriteByte('\t')
		for col := 0; col < 16; col++ {
			fmt.Fprintf(&buf, "0x%02X, ", first[row+col])
		}
		fmt.Fprintf(&buf, "// 0x%02X-0x%02X\n", row, row+15)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// acceptRanges is indexed by the high nibble of a first entry.\n")
	buf.WriteString("var acceptRanges = [...]AcceptRange{\n")
	for _, r := range ranges {
		fmt.Fprintf(&buf, "\t{Lo: 0x%02X, Hi: 0x%02X},\n", r.Lo, r.Hi)
	}
	buf.WriteString("}\n")

	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return src, nil
}
