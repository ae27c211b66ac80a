package fudiff

import (
	"strings"
	"unicode"
)

// Options configure how hunks are located inside a target text and how the
// input is split into lines.
//
// The zero value selects the documented defaults: whitespace-normalized fuzzy
// matching, failure on ambiguous context, and carriage returns stripped from
// CRLF input.
type Options struct {
	// StrictWhitespace disables whitespace normalization so context lines
	// only match byte-for-byte.
	StrictWhitespace bool
	// IgnoreCase folds letter case during fuzzy comparison.
	IgnoreCase bool
	// FirstMatch resolves ambiguous context to the lowest candidate offset
	// instead of failing. The skipped candidates are logged.
	FirstMatch bool
	// KeepCarriageReturns preserves a trailing \r on each line instead of
	// treating \r\n as a plain line boundary.
	KeepCarriageReturns bool
	// Logger receives diagnostics while matching and applying. Nil discards
	// them.
	Logger Logger
	// Metrics collects match and apply statistics. Nil discards them.
	Metrics Metrics
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return noopLogger
	}
	return o.Logger
}

func (o Options) metrics() Metrics {
	if o.Metrics == nil {
		return noopMetrics
	}
	return o.Metrics
}

// normalizeLine reduces a line to its fuzzy-comparison form: trailing
// whitespace trimmed, internal whitespace runs collapsed to a single space,
// and optionally case-folded.
func normalizeLine(line string, opts Options) string {
	var builder strings.Builder
	builder.Grow(len(line))
	inRun := false
	for _, r := range line {
		if unicode.IsSpace(r) {
			inRun = true
			continue
		}
		if inRun {
			builder.WriteByte(' ')
		}
		inRun = false
		builder.WriteRune(r)
	}
	normalized := builder.String()
	if opts.IgnoreCase {
		normalized = strings.ToLower(normalized)
	}
	return normalized
}
