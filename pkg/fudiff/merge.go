package fudiff

import (
	"context"
	"fmt"
)

// hunkSpan is a matched hunk viewed as intervals on the target's line index
// space: the full probe span [start, end) and the deletion core
// [delStart, delEnd) inside it. Adjacency, overlap, and merging are pure
// interval arithmetic on these values.
type hunkSpan struct {
	hunk     Hunk
	start    int
	end      int
	delStart int
	delEnd   int
}

func spanFor(h Hunk, offset int) hunkSpan {
	delStart := offset + len(h.ContextBefore)
	return hunkSpan{
		hunk:     h,
		start:    offset,
		end:      delStart + len(h.Deletions) + len(h.ContextAfter),
		delStart: delStart,
		delEnd:   delStart + len(h.Deletions),
	}
}

// normalizeHunks matches every hunk against the target and verifies the
// matched spans come in strictly increasing order. Touching or overlapping
// spans are merged into a single hunk; spans whose deletion cores collide
// are a genuine conflict.
//
// This runs on the original target, before the sequential apply pass:
// context and deletion lines are never mutated by earlier hunks, so the
// original coordinates are sufficient for interval reasoning.
func normalizeHunks(ctx context.Context, hunks []Hunk, lines []string, opts Options) ([]Hunk, *Error) {
	if len(hunks) < 2 {
		return hunks, nil
	}

	merged := make([]hunkSpan, 0, len(hunks))
	for i, hunk := range hunks {
		number := i + 1
		minOffset := 0
		if len(merged) > 0 {
			// Allow re-matching over the previous span so collisions are
			// classified as overlap instead of a missing context.
			minOffset = merged[len(merged)-1].start
		}
		offset, resolveErr := resolveMatch(ctx, hunk, lines, minOffset, number, opts)
		if resolveErr != nil {
			return nil, resolveErr
		}
		span := spanFor(hunk, offset)

		if len(merged) == 0 {
			merged = append(merged, span)
			continue
		}
		prev := merged[len(merged)-1]
		switch {
		case span.start > prev.end:
			merged = append(merged, span)
		case span.delStart >= prev.delEnd:
			opts.metrics().RecordMerge()
			opts.logger().Debug(ctx, "merged adjacent hunks",
				Field("hunk", number), Field("offset", offset))
			merged[len(merged)-1] = mergeSpans(prev, span, lines)
		default:
			return nil, &Error{
				Code:    ErrCodeOverlap,
				Message: fmt.Sprintf("hunks %d and %d delete overlapping lines", number-1, number),
				HunkA:   number - 1,
				HunkB:   number,
			}
		}
	}

	result := make([]Hunk, 0, len(merged))
	for _, span := range merged {
		result = append(result, span.hunk)
	}
	return result, nil
}

// mergeSpans concatenates two touching or context-overlapping hunks in
// positional order. The lines between the two deletion cores are context in
// at least one of the hunks; the merged hunk deletes and re-adds them so the
// four-bucket shape is preserved without claiming any line twice.
func mergeSpans(a, b hunkSpan, lines []string) hunkSpan {
	middle := lines[a.delEnd:b.delStart]

	deletions := make([]string, 0, b.delEnd-a.delStart)
	deletions = append(deletions, a.hunk.Deletions...)
	deletions = append(deletions, middle...)
	deletions = append(deletions, b.hunk.Deletions...)

	additions := make([]string, 0, len(a.hunk.Additions)+len(middle)+len(b.hunk.Additions))
	additions = append(additions, a.hunk.Additions...)
	additions = append(additions, middle...)
	additions = append(additions, b.hunk.Additions...)

	hunk := Hunk{
		ContextBefore: a.hunk.ContextBefore,
		Deletions:     deletions,
		Additions:     additions,
		ContextAfter:  b.hunk.ContextAfter,
	}
	return hunkSpan{
		hunk:     hunk,
		start:    a.start,
		end:      b.end,
		delStart: a.delStart,
		delEnd:   b.delEnd,
	}
}
