package fudiff

import (
	"context"
	"fmt"
	"time"
)

// Apply patches text with the diff and returns the new text.
//
// Hunks are applied in order. Each one is re-anchored against the live,
// already-edited working sequence rather than positioned by offset
// arithmetic, so earlier splices can never invalidate later matches. The
// input is never mutated; a Diff value is read-only after parsing and may be
// applied to many texts concurrently.
func (d *Diff) Apply(ctx context.Context, text string, opts Options) (string, error) {
	if len(d.Hunks) == 0 {
		return text, nil
	}

	// A hunk with additions but no anchoring lines at all can only denote an
	// insertion into an empty or single-boundary file. In a multi-hunk diff
	// there is no way to place it, so reject it before matching starts.
	if len(d.Hunks) > 1 {
		for i, hunk := range d.Hunks {
			if hunk.hasChanges() && len(hunk.ContextBefore) == 0 &&
				len(hunk.Deletions) == 0 && len(hunk.ContextAfter) == 0 {
				return "", &Error{
					Code:    ErrCodeInvalidHunk,
					Message: fmt.Sprintf("hunk %d inserts without any context", i+1),
				}
			}
		}
	}

	seq := SplitLines(text, opts)
	hunks, normErr := normalizeHunks(ctx, d.Hunks, seq.Items, opts)
	if normErr != nil {
		return "", normErr
	}

	working := append([]string(nil), seq.Items...)
	trailing := seq.TrailingNewline
	cursor := 0
	var statuses []HunkStatus

	for i, hunk := range hunks {
		if ctx.Err() != nil {
			return "", &Error{Message: ctx.Err().Error()}
		}
		number := i + 1
		started := time.Now()

		offset, applyErr := applyHunk(ctx, hunk, &working, cursor, number, opts)
		if applyErr != nil {
			return "", enhanceHunkError(applyErr, hunk, number, statuses)
		}
		statuses = append(statuses, HunkStatus{Number: number, Status: "applied"})
		opts.metrics().RecordHunkApplied(time.Since(started))

		cursor = offset + len(hunk.ContextBefore) + len(hunk.Additions)

		// A final hunk that deletes through end-of-file takes the trailing
		// newline with it; one that only adds or keeps context leaves the
		// input's flag intact.
		if i == len(hunks)-1 && len(hunk.Deletions) > 0 &&
			len(hunk.Additions) == 0 && len(hunk.ContextAfter) == 0 &&
			cursor == len(working) {
			trailing = false
		}
	}

	result := Lines{Items: working, TrailingNewline: trailing}
	opts.logger().Debug(ctx, "diff applied",
		Field("hunks", len(hunks)), Field("lines", len(working)))
	return result.Join(), nil
}

// applyHunk locates one hunk in the working sequence, verifies its deletions
// are literally present, and splices the additions over the deletion span.
// It returns the matched offset.
func applyHunk(ctx context.Context, hunk Hunk, working *[]string, cursor, number int, opts Options) (int, *Error) {
	lines := *working

	offset, matchErr := resolveMatch(ctx, hunk, lines, cursor, number, opts)
	if matchErr != nil {
		return 0, matchErr
	}

	delStart := offset + len(hunk.ContextBefore)
	if delEnd := delStart + len(hunk.Deletions); delEnd > len(lines) {
		if len(lines) == 0 {
			return 0, &Error{
				Code:    ErrCodeNoMatch,
				Message: "cannot apply deletions to empty input",
			}
		}
		return 0, &Error{
			Code:    ErrCodeDeletedLineNotFound,
			Message: fmt.Sprintf("deletion in hunk %d extends past end of file", number),
		}
	}
	for i, deletion := range hunk.Deletions {
		if lines[delStart+i] != deletion {
			return 0, &Error{
				Code: ErrCodeDeletedLineNotFound,
				Message: fmt.Sprintf("deletion mismatch at line %d: expected %q, found %q",
					delStart+i+1, deletion, lines[delStart+i]),
			}
		}
	}

	*working = splice(lines, delStart, len(hunk.Deletions), hunk.Additions)
	return offset, nil
}

func splice(target []string, index, deleteCount int, replacement []string) []string {
	result := make([]string, 0, len(target)-deleteCount+len(replacement))
	result = append(result, target[:index]...)
	result = append(result, replacement...)
	result = append(result, target[index+deleteCount:]...)
	return result
}

func enhanceHunkError(err *Error, hunk Hunk, number int, statuses []HunkStatus) *Error {
	all := append([]HunkStatus{}, statuses...)
	all = append(all, HunkStatus{Number: number, Status: "no-match"})
	err.HunkStatuses = all
	if err.FailedHunk == nil {
		err.FailedHunk = &FailedHunk{Number: number, RawLines: renderHunk(hunk)}
	}
	return err
}
