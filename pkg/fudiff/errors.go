package fudiff

import (
	"fmt"
	"strings"
)

// Error codes reported by Parse, Apply, and Revert.
const (
	// ErrCodeParse marks malformed diff text: an unknown line prefix, body
	// text outside a hunk, or input with no hunk headers at all.
	ErrCodeParse = "PARSE_ERROR"
	// ErrCodeInvalidHunk marks a hunk whose changes carry no context at all
	// outside a recognized file-boundary insertion.
	ErrCodeInvalidHunk = "INVALID_HUNK"
	// ErrCodeNoMatch means a hunk's context was not found anywhere in the
	// target.
	ErrCodeNoMatch = "NO_MATCH"
	// ErrCodeAmbiguous means a hunk's context was found at more than one
	// equally good offset and first-match mode is not enabled.
	ErrCodeAmbiguous = "AMBIGUOUS_CONTEXT"
	// ErrCodeDeletedLineNotFound means the matched location does not contain
	// the claimed deletion text; the target drifted since the diff was
	// authored.
	ErrCodeDeletedLineNotFound = "DELETED_LINE_NOT_FOUND"
	// ErrCodeOverlap means two hunks could not be reconciled into a
	// non-conflicting sequence.
	ErrCodeOverlap = "OVERLAPPING_HUNKS"
)

// HunkStatus tracks how a hunk fared while a diff was being applied.
type HunkStatus struct {
	Number int    `json:"number"`
	Status string `json:"status"`
}

// FailedHunk stores the rendered lines of the hunk that could not be applied.
type FailedHunk struct {
	Number   int      `json:"number"`
	RawLines []string `json:"rawLines"`
}

// Error represents a structured failure while parsing or applying a diff. It
// satisfies the error interface so it can be returned directly from the
// package's helpers.
type Error struct {
	Message string
	Code    string
	// Line is the 1-based line in the diff text for parse failures.
	Line int
	// Offsets lists every candidate line offset for ambiguous context.
	Offsets []int
	// HunkA and HunkB are the 1-based indices of conflicting hunks.
	HunkA int
	HunkB int

	HunkStatuses []HunkStatus
	FailedHunk   *FailedHunk
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "fudiff error"
}

func parseError(line int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeParse,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// FormatError renders Error values into a human readable report suitable for
// surfacing to end users or an upstream model.
func FormatError(err *Error) string {
	if err == nil {
		return "Unknown error occurred."
	}
	message := err.Message
	if message == "" {
		message = "Unknown error occurred."
	}

	var parts []string
	switch err.Code {
	case ErrCodeParse:
		if err.Line > 0 {
			parts = append(parts, fmt.Sprintf("Parse error on line %d: %s", err.Line, message))
		} else {
			parts = append(parts, "Parse error: "+message)
		}
	case ErrCodeAmbiguous:
		parts = append(parts, message)
		if len(err.Offsets) > 0 {
			locations := make([]string, 0, len(err.Offsets))
			for _, offset := range err.Offsets {
				locations = append(locations, fmt.Sprintf("%d", offset+1))
			}
			parts = append(parts, fmt.Sprintf("Candidate locations (lines): %s.", strings.Join(locations, ", ")))
		}
	case ErrCodeOverlap:
		parts = append(parts, message)
		if err.HunkA > 0 && err.HunkB > 0 {
			parts = append(parts, fmt.Sprintf("Conflicting hunks: %d and %d.", err.HunkA, err.HunkB))
		}
	default:
		parts = append(parts, message)
	}

	if summary := describeHunkStatuses(err.HunkStatuses); summary != "" {
		parts = append(parts, "", summary)
	}
	if err.FailedHunk != nil && len(err.FailedHunk.RawLines) > 0 {
		parts = append(parts, "", "Offending hunk:")
		parts = append(parts, strings.Join(err.FailedHunk.RawLines, "\n"))
	}
	return strings.Join(parts, "\n")
}

func describeHunkStatuses(statuses []HunkStatus) string {
	if len(statuses) == 0 {
		return ""
	}
	var applied []string
	var failed string
	for _, status := range statuses {
		if status.Status == "applied" {
			applied = append(applied, fmt.Sprintf("%d", status.Number))
			continue
		}
		if failed == "" {
			failed = fmt.Sprintf("No match for hunk %d.", status.Number)
		}
	}

	parts := make([]string, 0, 2)
	if len(applied) > 0 {
		parts = append(parts, fmt.Sprintf("Hunks applied: %s.", strings.Join(applied, ", ")))
	}
	if failed != "" {
		parts = append(parts, failed)
	}
	return strings.Join(parts, "\n")
}
