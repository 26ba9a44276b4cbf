package main

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/synadia-labs/utf8v.go/utf8check/core"
)

const version = "0.1.0"

// Exit codes.
const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

// CLI defines the utf8check command-line interface.
//
// Input comes from the TEXT argument, --file, or standard input, in that
// order. The exit code is 0 for valid input and 1 for invalid input;
// read and decode failures exit with 2.
type CLI struct {
	Text     *string          `arg:"" optional:"" help:"Text to validate (reads --file or standard input when omitted)"`
	File     string           `short:"f" help:"Read input from this file" type:"existingfile"`
	Format   string           `short:"F" help:"Input format (${enum})" enum:"raw,cbor,msgpack" default:"raw" env:"UTF8CHECK_FORMAT"`
	Output   string           `short:"o" help:"Report format (${enum})" enum:"text,json,cbor" default:"text" env:"UTF8CHECK_OUTPUT"`
	Sequence bool             `short:"s" help:"Treat cbor/msgpack input as a sequence of concatenated documents"`
	Limit    int              `short:"l" help:"Stop after this many findings (0 means no limit)" default:"0"`
	MaxDepth int              `help:"Maximum nesting depth of cbor/msgpack documents" default:"32"`
	Quiet    bool             `short:"q" help:"Print nothing and report through the exit code only"`
	Verbose  bool             `short:"v" help:"Enable verbose diagnostics"`
	Version  kong.VersionFlag `help:"Print version and exit"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("utf8check"),
		kong.Description("Check that input is well-formed UTF-8."),
		kong.Vars{"version": "utf8check " + version},
	)

	valid, err := run(&cli, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		ctx.Errorf("%v", err)
	}
	if code := exitCode(valid, err); code != exitValid {
		ctx.Exit(code)
	}
}

// exitCode maps the outcome of run to the process exit code.
func exitCode(valid bool, err error) int {
	switch {
	case err != nil:
		return exitError
	case !valid:
		return exitInvalid
	}
	return exitValid
}

func run(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (bool, error) {
	in := core.Input{
		Text:  cli.Text,
		File:  strings.TrimSpace(cli.File),
		Stdin: stdin,
	}
	return core.Run(in, stdout, core.Options{
		Format:   cli.Format,
		Output:   cli.Output,
		Sequence: cli.Sequence,
		Limit:    cli.Limit,
		MaxDepth: cli.MaxDepth,
		Quiet:    cli.Quiet,
		Verbose:  cli.Verbose,
		Stderr:   stderr,
	})
}
