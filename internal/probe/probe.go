// Package probe inspects patch targets before a diff touches them: it counts
// line-ending flavors, records whether the file ends in a newline, and flags
// binary content that a line-oriented patch engine must refuse.
package probe

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/asynkron/fudiff/pkg/fudiff"
)

// binarySniffLen bounds how much of the content is scanned for NUL bytes.
const binarySniffLen = 8192

// Ending names a line-ending flavor.
type Ending string

const (
	EndingLF    Ending = "lf"
	EndingCRLF  Ending = "crlf"
	EndingMixed Ending = "mixed"
	EndingNone  Ending = "none"
)

// Result captures everything Inspect learned about a target.
type Result struct {
	Binary          bool
	LFCount         int
	CRLFCount       int
	TrailingNewline bool
	Lines           int
	Dominant        Ending
}

// Inspect examines raw file content. It never fails: binary content is a
// reported property, not an error.
func Inspect(content []byte) Result {
	result := Result{}

	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		result.Binary = true
		return result
	}

	for i, b := range content {
		if b != '\n' {
			continue
		}
		if i > 0 && content[i-1] == '\r' {
			result.CRLFCount++
		} else {
			result.LFCount++
		}
	}
	result.TrailingNewline = len(content) > 0 && content[len(content)-1] == '\n'

	if len(content) > 0 {
		result.Lines = result.LFCount + result.CRLFCount
		if !result.TrailingNewline {
			result.Lines++
		}
	}

	switch {
	case result.LFCount == 0 && result.CRLFCount == 0:
		result.Dominant = EndingNone
	case result.LFCount > 0 && result.CRLFCount > 0:
		result.Dominant = EndingMixed
	case result.CRLFCount > 0:
		result.Dominant = EndingCRLF
	default:
		result.Dominant = EndingLF
	}
	return result
}

// InspectFile reads and inspects a file on disk.
func InspectFile(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return Inspect(content), nil
}

// SuggestedOptions derives engine options from the inspection: mixed-ending
// files keep their carriage returns so the bytes the diff does not touch
// survive verbatim.
func (r Result) SuggestedOptions() fudiff.Options {
	return fudiff.Options{
		KeepCarriageReturns: r.Dominant == EndingMixed,
	}
}

// FormatSummary renders the result as a short human-readable report.
func (r Result) FormatSummary() string {
	if r.Binary {
		return "binary content; not patchable"
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d lines", r.Lines))
	switch r.Dominant {
	case EndingMixed:
		parts = append(parts, fmt.Sprintf("mixed endings (%d lf, %d crlf)", r.LFCount, r.CRLFCount))
	case EndingNone:
		parts = append(parts, "no line endings")
	default:
		parts = append(parts, string(r.Dominant)+" endings")
	}
	if r.TrailingNewline {
		parts = append(parts, "trailing newline")
	} else {
		parts = append(parts, "no trailing newline")
	}
	return strings.Join(parts, ", ")
}
