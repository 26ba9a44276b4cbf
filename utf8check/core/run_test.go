package core_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"

	"github.com/synadia-labs/utf8v.go/scan"
	"github.com/synadia-labs/utf8v.go/utf8check/core"
)

func text(s string) *string { return &s }

func TestCheckRaw(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{name: "empty", data: "", want: true},
		{name: "test", data: "test", want: true},
		{name: "e_acute", data: "\xC3\xA9", want: true},
		{name: "emoji", data: "\xF0\x9F\x98\x80", want: true},
		{name: "truncated", data: "\xE2\x82", want: false},
		{name: "overlong", data: "\xC0\x80", want: false},
		{name: "surrogate", data: "\xED\xA0\x80", want: false},
		{name: "lead_f5", data: "\xF5\x80\x80\x80", want: false},
		{name: "stray", data: "\x80", want: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := core.Check([]byte(c.data), "test", core.Options{})
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if r.Valid != c.want {
				t.Fatalf("Check(%q).Valid = %v, want %v", c.data, r.Valid, c.want)
			}
			if r.Valid != (len(r.Findings) == 0) {
				t.Fatalf("Valid=%v but %d findings", r.Valid, len(r.Findings))
			}
			if r.Format != core.FormatRaw || r.Size != len(c.data) {
				t.Fatalf("report header = %+v", r)
			}
		})
	}
}

func TestCheckFormats(t *testing.T) {
	// ["ok", "\xED\xA0\x80"] in CBOR.
	cborDoc, err := hex.DecodeString("82626f6b63eda080")
	if err != nil {
		t.Fatal(err)
	}
	r, err := core.Check(cborDoc, "doc", core.Options{Format: core.FormatCBOR})
	if err != nil {
		t.Fatalf("Check cbor: %v", err)
	}
	want := []scan.Finding{{Path: "1", Offset: 0, Reason: "surrogate code point"}}
	if r.Valid || !reflect.DeepEqual(r.Findings, want) {
		t.Fatalf("cbor report = %+v", r)
	}

	// Raw check of the same bytes sees the CBOR framing as text.
	r, err = core.Check(cborDoc, "doc", core.Options{})
	if err != nil || r.Valid {
		t.Fatalf("raw check of cbor bytes = %+v, %v", r, err)
	}

	if _, err := core.Check([]byte{0xc1}, "doc", core.Options{Format: core.FormatMsgPack}); err == nil {
		t.Fatalf("expected msgpack decode error")
	}
	if _, err := core.Check(nil, "doc", core.Options{Format: "xml"}); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestRunText(t *testing.T) {
	var out bytes.Buffer
	valid, err := core.Run(core.Input{Text: text("a\xC0\x80")}, &out, core.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if valid {
		t.Fatalf("expected invalid")
	}
	want := "invalid: overlong encoding at offset 1\ninvalid: invalid leading byte at offset 2\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	valid, err = core.Run(core.Input{Text: text("h\xC3\xA9llo")}, &out, core.Options{})
	if err != nil || !valid || out.String() != "valid\n" {
		t.Fatalf("Run valid = %v, %v, %q", valid, err, out.String())
	}

	out.Reset()
	valid, err = core.Run(core.Input{Text: text("\xFF\xFF\xFF")}, &out, core.Options{Limit: 1})
	if err != nil || valid || strings.Count(out.String(), "\n") != 1 {
		t.Fatalf("Run with limit = %v, %v, %q", valid, err, out.String())
	}
}

func TestRunSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("\xED\xA0\x80"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out, stderr bytes.Buffer
	valid, err := core.Run(core.Input{File: path}, &out, core.Options{Quiet: true, Verbose: true, Stderr: &stderr})
	if err != nil || valid {
		t.Fatalf("Run file = %v, %v", valid, err)
	}
	if out.Len() != 0 {
		t.Fatalf("quiet run wrote %q", out.String())
	}
	if !strings.Contains(stderr.String(), "read 3 bytes from "+path) {
		t.Fatalf("verbose output = %q", stderr.String())
	}

	out.Reset()
	valid, err = core.Run(core.Input{Stdin: strings.NewReader("plain ascii")}, &out, core.Options{})
	if err != nil || !valid {
		t.Fatalf("Run stdin = %v, %v", valid, err)
	}

	if _, err := core.Run(core.Input{File: filepath.Join(dir, "missing")}, &out, core.Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := core.Run(core.Input{}, &out, core.Options{}); err == nil {
		t.Fatalf("expected error without input")
	}

	// An empty argument is empty input, not a request to read stdin.
	out.Reset()
	valid, err = core.Run(core.Input{Text: text(""), Stdin: strings.NewReader("\xFF")}, &out, core.Options{})
	if err != nil || !valid || out.String() != "valid\n" {
		t.Fatalf("Run empty argument = %v, %v, %q", valid, err, out.String())
	}
}

func TestWriteReportEncodings(t *testing.T) {
	r := core.Report{
		Source:   "argument",
		Format:   core.FormatRaw,
		Size:     2,
		Findings: []scan.Finding{{Offset: 0, Reason: "overlong encoding"}},
	}

	var buf bytes.Buffer
	if err := core.WriteReport(&buf, r, core.OutputJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON core.Report
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, r) {
		t.Fatalf("json report = %+v, want %+v", fromJSON, r)
	}

	buf.Reset()
	if err := core.WriteReport(&buf, r, core.OutputCBOR); err != nil {
		t.Fatalf("cbor: %v", err)
	}
	var fromCBOR core.Report
	if err := fxcbor.Unmarshal(buf.Bytes(), &fromCBOR); err != nil {
		t.Fatalf("decode cbor: %v", err)
	}
	if !reflect.DeepEqual(fromCBOR, r) {
		t.Fatalf("cbor report = %+v, want %+v", fromCBOR, r)
	}

	if err := core.WriteReport(&buf, r, "yaml"); err == nil {
		t.Fatalf("expected unknown output error")
	}
}
