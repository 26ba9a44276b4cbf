package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	fxcbor "github.com/fxamacker/cbor/v2"

	utf8v "github.com/synadia-labs/utf8v.go/runtime"
	"github.com/synadia-labs/utf8v.go/scan"
)

// Input formats.
const (
	FormatRaw     = "raw"
	FormatCBOR    = "cbor"
	FormatMsgPack = "msgpack"
)

// Report encodings.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputCBOR = "cbor"
)

// Options configures how a check runs and is reported.
// Zero values select raw input and a text report.
type Options struct {
	Format   string
	Output   string
	Sequence bool
	Limit    int
	MaxDepth int
	Quiet    bool
	Verbose  bool
	// Stderr receives verbose diagnostics. Nil discards them.
	Stderr io.Writer
}

// Input selects where the bytes to check come from. Text wins over File,
// and Stdin is read when neither is set. A non-nil empty Text is checked
// as empty input.
type Input struct {
	Text  *string
	File  string
	Stdin io.Reader
}

// Report is the outcome of one check.
type Report struct {
	Source   string         `json:"source" cbor:"1,keyasint"`
	Format   string         `json:"format" cbor:"2,keyasint"`
	Size     int            `json:"size" cbor:"3,keyasint"`
	Valid    bool           `json:"valid" cbor:"4,keyasint"`
	Findings []scan.Finding `json:"findings,omitempty" cbor:"5,keyasint,omitempty"`
}

// Run reads the input, checks it and writes the report to w. It returns
// whether the input is valid; the error is non-nil only when the input
// could not be read or decoded, or the report could not be written.
func Run(in Input, w io.Writer, opts Options) (bool, error) {
	data, source, err := read(in)
	if err != nil {
		return false, err
	}
	opts.logf("read %d bytes from %s", len(data), source)

	r, err := Check(data, source, opts)
	if err != nil {
		return false, err
	}
	opts.logf("%s input: valid=%v findings=%d", r.Format, r.Valid, len(r.Findings))

	if opts.Quiet {
		return r.Valid, nil
	}
	if err := WriteReport(w, r, opts.Output); err != nil {
		return r.Valid, fmt.Errorf("write report: %w", err)
	}
	return r.Valid, nil
}

// Check validates data according to opts.Format.
func Check(data []byte, source string, opts Options) (Report, error) {
	format := opts.Format
	if format == "" {
		format = FormatRaw
	}
	r := Report{Source: source, Format: format, Size: len(data)}

	sopts := scan.Options{Sequence: opts.Sequence, MaxDepth: opts.MaxDepth, Limit: opts.Limit}
	var err error
	switch format {
	case FormatRaw:
		if r.Valid = utf8v.Valid(data); !r.Valid {
			r.Findings = rawFindings(data, opts.Limit)
		}
		return r, nil
	case FormatCBOR:
		r.Findings, err = scan.CBOR(data, sopts)
	case FormatMsgPack:
		r.Findings, err = scan.MsgPack(data, sopts)
	default:
		return r, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return r, err
	}
	r.Valid = len(r.Findings) == 0
	return r, nil
}

// rawFindings lists the ill-formed subparts of data.
func rawFindings(data []byte, limit int) []scan.Finding {
	var out []scan.Finding
	for _, err := range utf8v.ValidateAll(data, limit) {
		var se *utf8v.SequenceError
		if errors.As(err, &se) {
			out = append(out, scan.Finding{Offset: se.Offset, Reason: se.Reason()})
		}
	}
	return out
}

// WriteReport encodes r to w in the given output format.
func WriteReport(w io.Writer, r Report, output string) error {
	switch output {
	case "", OutputText:
		return writeText(w, r)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case OutputCBOR:
		em, err := fxcbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}
		b, err := em.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unknown output format %q", output)
}

func writeText(w io.Writer, r Report) error {
	var sb strings.Builder
	if r.Valid {
		sb.WriteString("valid\n")
	}
	for _, f := range r.Findings {
		sb.WriteString("invalid: ")
		if f.Path == "" && !f.Key {
			fmt.Fprintf(&sb, "%s at offset %d", f.Reason, f.Offset)
		} else {
			sb.WriteString(f.String())
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func read(in Input) ([]byte, string, error) {
	switch {
	case in.Text != nil:
		return []byte(*in.Text), "argument", nil
	case in.File != "":
		b, err := os.ReadFile(in.File)
		if err != nil {
			return nil, in.File, fmt.Errorf("read input: %w", err)
		}
		return b, in.File, nil
	case in.Stdin != nil:
		b, err := io.ReadAll(in.Stdin)
		if err != nil {
			return nil, "stdin", fmt.Errorf("read stdin: %w", err)
		}
		return b, "stdin", nil
	}
	return nil, "", errors.New("no input: pass TEXT, --file or pipe to standard input")
}

func (o Options) logf(format string, args ...any) {
	if !o.Verbose || o.Stderr == nil {
		return
	}
	fmt.Fprintf(o.Stderr, "utf8check: "+format+"\n", args...)
}
