// Package cli wires the fudiff engine to a command line: applying, reverting,
// checking, generating, and previewing fuzzy diffs against files on disk.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/asynkron/fudiff/internal/probe"
	"github.com/asynkron/fudiff/internal/tui"
	"github.com/asynkron/fudiff/pkg/fudiff"
)

// Run executes the fudiff command using the provided CLI arguments.
// It returns a POSIX-style exit code indicating whether execution succeeded.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	flagSet := flag.NewFlagSet("fudiff", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	diffPath := flagSet.String("diff", "-", "diff file to read, '-' for stdin")
	target := flagSet.String("target", "", "file the diff is applied to")
	revert := flagSet.Bool("revert", false, "undo the diff instead of applying it")
	check := flagSet.Bool("check", false, "verify the diff applies without writing anything")
	preview := flagSet.Bool("preview", false, "open an interactive preview instead of writing")
	create := flagSet.Bool("create", false, "generate a diff from -old and -new instead of applying one")
	oldPath := flagSet.String("old", "", "original file when generating a diff")
	newPath := flagSet.String("new", "", "updated file when generating a diff")
	write := flagSet.Bool("write", false, "write the patched result back to the target file")
	output := flagSet.String("output", "", "write the result to this file instead of stdout")
	asJSON := flagSet.Bool("json", false, "emit generated diffs as a JSON interchange document")
	firstMatch := flagSet.Bool("first-match", envBool("FUDIFF_FIRST_MATCH"), "resolve ambiguous context to the first candidate")
	ignoreCase := flagSet.Bool("ignore-case", envBool("FUDIFF_IGNORE_CASE"), "fold letter case while matching context")
	strictWhitespace := flagSet.Bool("strict-whitespace", envBool("FUDIFF_STRICT_WHITESPACE"), "require byte-for-byte context matches")
	keepCR := flagSet.Bool("keep-cr", envBool("FUDIFF_KEEP_CR"), "preserve carriage returns instead of treating CRLF as a line break")
	verbose := flagSet.Bool("verbose", envBool("FUDIFF_VERBOSE"), "log matching decisions to stderr")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	opts := fudiff.Options{
		FirstMatch:          *firstMatch,
		IgnoreCase:          *ignoreCase,
		StrictWhitespace:    *strictWhitespace,
		KeepCarriageReturns: *keepCR,
	}
	if *verbose {
		opts.Logger = fudiff.NewStdLogger(fudiff.LogLevelDebug, stderr)
	}

	if *create {
		return runCreate(stdout, stderr, *oldPath, *newPath, *output, *asJSON)
	}

	if *target == "" {
		fmt.Fprintln(stderr, "a -target file is required")
		return 2
	}

	diff, code := readDiff(stdin, stderr, *diffPath)
	if code != 0 {
		return code
	}

	content, err := os.ReadFile(*target)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read target: %v\n", err)
		return 1
	}
	inspection := probe.Inspect(content)
	if inspection.Binary {
		fmt.Fprintf(stderr, "%s: %s\n", *target, inspection.FormatSummary())
		return 1
	}
	if *verbose {
		fmt.Fprintf(stderr, "%s: %s\n", *target, inspection.FormatSummary())
	}
	if !*keepCR && inspection.SuggestedOptions().KeepCarriageReturns {
		// Mixed line endings: stripping the \r bytes would rewrite lines the
		// diff never touched.
		opts.KeepCarriageReturns = true
	}

	result, applyErr := transform(ctx, diff, string(content), opts, *revert)

	if *preview {
		if err := tui.Run(tui.Preview{
			Target:   *target,
			Diff:     diff,
			Result:   result,
			ApplyErr: applyErr,
		}); err != nil {
			fmt.Fprintf(stderr, "preview failed: %v\n", err)
			return 1
		}
		if applyErr != nil {
			return 1
		}
		return 0
	}

	if applyErr != nil {
		reportError(stderr, applyErr)
		return 1
	}

	if *check {
		fmt.Fprintf(stdout, "%s: ok\n", *target)
		return 0
	}

	switch {
	case *output != "":
		if err := os.WriteFile(*output, []byte(result), 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write output: %v\n", err)
			return 1
		}
	case *write:
		fsResult, err := writeBack(ctx, diff, *target, opts, *revert)
		if err != nil {
			reportError(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "%s %s\n", fsResult.Status, fsResult.Path)
	default:
		fmt.Fprint(stdout, result)
	}
	return 0
}

func transform(ctx context.Context, diff *fudiff.Diff, content string, opts fudiff.Options, revert bool) (string, error) {
	if revert {
		return diff.Revert(ctx, content, opts)
	}
	return diff.Apply(ctx, content, opts)
}

func writeBack(ctx context.Context, diff *fudiff.Diff, target string, opts fudiff.Options, revert bool) (fudiff.Result, error) {
	fsOpts := fudiff.FilesystemOptions{Options: opts}
	if revert {
		return fudiff.RevertFile(ctx, diff, target, fsOpts)
	}
	return fudiff.ApplyFile(ctx, diff, target, fsOpts)
}

func runCreate(stdout, stderr io.Writer, oldPath, newPath, output string, asJSON bool) int {
	if oldPath == "" || newPath == "" {
		fmt.Fprintln(stderr, "-create requires both -old and -new")
		return 2
	}
	oldContent, err := os.ReadFile(oldPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read old file: %v\n", err)
		return 1
	}
	newContent, err := os.ReadFile(newPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read new file: %v\n", err)
		return 1
	}

	diff := fudiff.Create(string(oldContent), string(newContent))
	diff.OldPath = oldPath
	diff.NewPath = newPath

	var rendered string
	if asJSON {
		data, err := diff.ToJSON()
		if err != nil {
			fmt.Fprintf(stderr, "failed to encode diff: %v\n", err)
			return 1
		}
		rendered = string(data) + "\n"
	} else {
		rendered = diff.Render()
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write output: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprint(stdout, rendered)
	return 0
}

// readDiff loads the diff from a file or stdin and parses either the textual
// or the JSON interchange form, detected from the first byte.
func readDiff(stdin io.Reader, stderr io.Writer, path string) (*fudiff.Diff, int) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to read diff: %v\n", err)
		return nil, 1
	}

	var diff *fudiff.Diff
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		diff, err = fudiff.ParseJSON(data)
	} else {
		diff, err = fudiff.Parse(string(data))
	}
	if err != nil {
		reportError(stderr, err)
		return nil, 1
	}
	return diff, 0
}

func reportError(stderr io.Writer, err error) {
	var perr *fudiff.Error
	if errors.As(err, &perr) {
		fmt.Fprintln(stderr, fudiff.FormatError(perr))
		return
	}
	fmt.Fprintln(stderr, err)
}

func envBool(name string) bool {
	value, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		return false
	}
	return value
}
