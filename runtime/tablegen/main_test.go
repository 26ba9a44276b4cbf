package main

import (
	"bytes"
	"os"
	"testing"
)

// TestGeneratedFileUpToDate regenerates the table and compares it with the
// checked-in file.
func TestGeneratedFileUpToDate(t *testing.T) {
	want, err := os.ReadFile("../table_gen.go")
	if err != nil {
		t.Fatalf("read table_gen.go: %v", err)
	}
	got, err := generate("table_gen.go", "utf8v")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("table_gen.go is stale; run go generate ./runtime\n--- generated ---\n%s", got)
	}
}

func TestGeneratePackageName(t *testing.T) {
	got, err := generate("x.go", "other")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Contains(got, []byte("\npackage other\n")) {
		t.Fatalf("generated source has wrong package clause:\n%s", got)
	}
}

func TestColumnHeader(t *testing.T) {
	got, err := generate("table_gen.go", "utf8v")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := bytes.Split(got, []byte("\n"))
	for i, line := range lines {
		if !bytes.HasPrefix(line, []byte("var first = ")) {
			continue
		}
		header := string(bytes.TrimSpace(lines[i+1]))
		row := string(bytes.TrimSpace(lines[i+2]))
		if len(header) != len("// 0")+6*15 {
			t.Fatalf("header %q does not span 16 columns", header)
		}
		// Each label sits under the last hex digit of its column.
		for col, label := range "0123456789ABCDEF" {
			pos := 3 + 6*col
			if header[pos] != byte(label) || row[pos-3:pos-1] != "0x" {
				t.Fatalf("column %d: header %q misaligned with row %q", col, header, row)
			}
		}
		return
	}
	t.Fatalf("first table not found in generated source")
}
