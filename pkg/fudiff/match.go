package fudiff

import (
	"context"
	"fmt"
)

// Per-line match costs. Context lines may match exactly or after whitespace
// normalization; deletion lines are only ever equal byte-for-byte, but a
// mismatched deletion keeps the window alive so the failure surfaces as a
// located deletion error instead of a generic no-match.
const (
	scoreExact            = 0
	scoreNormalized       = 1
	scoreDeletionMismatch = 100
)

// matchCandidate is a transient result of locating a hunk: the line offset
// where its probe starts and the accumulated fuzziness cost (0 = exact).
type matchCandidate struct {
	offset int
	score  int
}

// probeLine is one slot of the sliding-window probe.
type probeLine struct {
	text     string
	deletion bool
}

// probe builds the window the matcher slides over the target: context-before,
// then deletions when present (they must occupy those exact slots to be
// removable), then context-after.
func (h Hunk) probe() []probeLine {
	probe := make([]probeLine, 0, len(h.ContextBefore)+len(h.Deletions)+len(h.ContextAfter))
	for _, line := range h.ContextBefore {
		probe = append(probe, probeLine{text: line})
	}
	for _, line := range h.Deletions {
		probe = append(probe, probeLine{text: line, deletion: true})
	}
	for _, line := range h.ContextAfter {
		probe = append(probe, probeLine{text: line})
	}
	return probe
}

// lineScore compares one target line against one probe slot. It returns the
// fuzziness cost, or ok=false when the lines cannot be considered equal.
func lineScore(target string, slot probeLine, opts Options) (int, bool) {
	if target == slot.text {
		return scoreExact, true
	}
	if slot.deletion {
		// Deletions must be literally present; a near miss is reported by
		// the applier, not silently tolerated.
		return scoreDeletionMismatch, true
	}
	if opts.StrictWhitespace {
		return 0, false
	}
	if normalizeLine(target, opts) == normalizeLine(slot.text, opts) {
		return scoreNormalized, true
	}
	return 0, false
}

// locate finds every offset at or after minOffset where the hunk's probe
// matches the target lines, keeping only the best-scoring candidates.
//
// Boundary rule: a hunk without leading context is additionally anchored at
// minOffset itself, even when its deletions overrun the available lines, so
// file-edge hunks with thin context resolve to a located error rather than
// a blind no-match. A hunk with no probe at all (a contextless insertion)
// anchors only at minOffset.
func locate(h Hunk, lines []string, minOffset int, opts Options) []matchCandidate {
	probe := h.probe()
	if minOffset < 0 {
		minOffset = 0
	}
	if len(probe) == 0 {
		return []matchCandidate{{offset: minOffset}}
	}

	var candidates []matchCandidate
	best := -1
	for offset := minOffset; offset+len(probe) <= len(lines); offset++ {
		score, ok := windowScore(probe, lines, offset, opts)
		if !ok {
			continue
		}
		if best == -1 || score < best {
			best = score
			candidates = candidates[:0]
		}
		if score == best {
			candidates = append(candidates, matchCandidate{offset: offset, score: score})
		}
	}

	if len(candidates) == 0 && len(h.ContextBefore) == 0 && len(h.Deletions) > 0 {
		return []matchCandidate{{offset: minOffset, score: scoreDeletionMismatch}}
	}
	return candidates
}

func windowScore(probe []probeLine, lines []string, offset int, opts Options) (int, bool) {
	total := 0
	for i, slot := range probe {
		score, ok := lineScore(lines[offset+i], slot, opts)
		if !ok {
			return 0, false
		}
		total += score
	}
	return total, true
}

// resolveMatch applies the ambiguity policy to the candidate set and returns
// the chosen offset. Zero candidates is a no-match; several equally good
// candidates fail unless first-match mode is configured, in which case the
// lowest offset wins and the ambiguity is only logged.
func resolveMatch(ctx context.Context, h Hunk, lines []string, minOffset, hunkNumber int, opts Options) (int, *Error) {
	candidates := locate(h, lines, minOffset, opts)
	opts.metrics().RecordLocate(len(candidates), len(candidates) > 0 && candidates[0].score > 0)

	switch len(candidates) {
	case 0:
		if len(lines) == 0 && len(h.Deletions) > 0 {
			return 0, &Error{
				Code:    ErrCodeNoMatch,
				Message: "cannot apply deletions to empty input",
			}
		}
		return 0, &Error{
			Code:    ErrCodeNoMatch,
			Message: fmt.Sprintf("could not find context for hunk %d", hunkNumber),
		}
	case 1:
		return candidates[0].offset, nil
	}

	offsets := make([]int, 0, len(candidates))
	for _, candidate := range candidates {
		offsets = append(offsets, candidate.offset)
	}
	if opts.FirstMatch {
		opts.logger().Warn(ctx, "ambiguous context resolved to first match",
			Field("hunk", hunkNumber), Field("offsets", offsets))
		return candidates[0].offset, nil
	}
	return 0, &Error{
		Code:    ErrCodeAmbiguous,
		Message: fmt.Sprintf("multiple matches for context of hunk %d", hunkNumber),
		Offsets: offsets,
	}
}
