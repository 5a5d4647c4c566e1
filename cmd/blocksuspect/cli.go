// Package main implements the blocksuspect CLI: a thin front end over
// internal/suspect.Search (spec.md §6/§7 "CLI glue... non-goal" — this
// stays deliberately small, text or JSON output only, no colorized
// formatting, no editor protocol, no stack-trace patching).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blocksuspect/blocksuspect/internal/refparser"
	"github.com/blocksuspect/blocksuspect/internal/suspect"
	"github.com/google/renameio"
)

const (
	exitOK       = 0
	exitIssues   = 1
	exitInternal = 3

	outputFormatText = "text"
	outputFormatJSON = "json"
)

type cliOptions struct {
	stdin  bool
	format string
	out    string
	path   string
}

type blockRangeJSON struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "blocksuspect: %v\n\n%s", err, usage)
		return exitInternal
	}

	src, label, err := readInput(stdin, opts)
	if err != nil {
		writef(stderr, "blocksuspect: %v\n", err)
		return exitInternal
	}

	ranges, err := suspect.Search(ctx, refparser.Native(), string(src))
	if err != nil {
		writef(stderr, "blocksuspect: search failed: %v\n", err)
		return exitInternal
	}
	if len(ranges) == 0 {
		return exitOK
	}

	if err := writeRangesOutput(opts, stdout, label, ranges); err != nil {
		writef(stderr, "blocksuspect: %v\n", err)
		return exitInternal
	}
	return exitIssues
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("blocksuspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.stdin, "stdin", false, "read input from stdin")
	fs.StringVar(&opts.format, "format", outputFormatText, "output format: text|json")
	fs.StringVar(&opts.out, "out", "", "write JSON output atomically to this path instead of stdout")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}

	if !isSupportedOutputFormat(opts.format) {
		return cliOptions{}, usage, errors.New("--format must be one of: text, json")
	}
	if opts.out != "" && opts.format != outputFormatJSON {
		return cliOptions{}, usage, errors.New("--out requires --format json")
	}

	rest := fs.Args()
	switch {
	case opts.stdin && len(rest) > 0:
		return cliOptions{}, usage, errors.New("positional file path is not allowed with --stdin")
	case !opts.stdin && len(rest) == 0:
		return cliOptions{}, usage, errors.New("exactly one input file path is required (or use --stdin)")
	case !opts.stdin && len(rest) != 1:
		return cliOptions{}, usage, errors.New("scanning multiple files in one invocation is not supported")
	}
	if !opts.stdin {
		opts.path = rest[0]
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  blocksuspect [flags] path/to/file\n")
	b.WriteString("  blocksuspect --stdin [flags]\n\n")
	b.WriteString("Flags:\n")
	fs.VisitAll(func(f *flag.Flag) {
		writef(&b, "  --%s\t%s\n", f.Name, f.Usage)
	})
	return b.String()
}

func readInput(stdin io.Reader, opts cliOptions) ([]byte, string, error) {
	if opts.stdin {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return src, "stdin", nil
	}
	//nolint:gosec // CLI intentionally reads user-provided file paths.
	src, err := os.ReadFile(opts.path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", opts.path, err)
	}
	return src, opts.path, nil
}

func isSupportedOutputFormat(v string) bool {
	switch v {
	case outputFormatText, outputFormatJSON:
		return true
	default:
		return false
	}
}

func writeRangesOutput(opts cliOptions, stdout io.Writer, label string, ranges []suspect.BlockRange) error {
	switch opts.format {
	case outputFormatText:
		writeTextRanges(stdout, label, ranges)
		return nil
	case outputFormatJSON:
		return writeJSONRanges(opts, stdout, ranges)
	default:
		return fmt.Errorf("unsupported --format %q", opts.format)
	}
}

func writeTextRanges(w io.Writer, label string, ranges []suspect.BlockRange) {
	for _, r := range ranges {
		writef(w, "%s:%d-%d\n", label, r.StartLine, r.EndLine)
	}
}

func writeJSONRanges(opts cliOptions, stdout io.Writer, ranges []suspect.BlockRange) error {
	out := make([]blockRangeJSON, len(ranges))
	for i, r := range ranges {
		out[i] = blockRangeJSON{StartLine: r.StartLine, EndLine: r.EndLine}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal ranges: %w", err)
	}
	data = append(data, '\n')

	if opts.out == "" {
		_, err := stdout.Write(data)
		return err
	}
	return writeFileAtomically(opts.out, data)
}

func writeFileAtomically(path string, data []byte) (rerr error) {
	pf, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer func() {
		if rerr != nil {
			_ = pf.Cleanup()
		}
	}()
	if _, err := pf.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
