package fudiff

import "strings"

// Hunk is one change block: leading context, deletions, additions, trailing
// context. Content is stored without the one-character line marker; exactly
// one marker is stripped on parse and prepended on render so content that
// itself begins with ' ', '-', or '+' survives a round trip unchanged.
type Hunk struct {
	ContextBefore []string `json:"contextBefore,omitempty"`
	Deletions     []string `json:"deletions,omitempty"`
	Additions     []string `json:"additions,omitempty"`
	ContextAfter  []string `json:"contextAfter,omitempty"`
}

// hasChanges reports whether the hunk deletes or adds anything. A hunk with
// neither is a context-only verification assertion, not an error.
func (h Hunk) hasChanges() bool {
	return len(h.Deletions) > 0 || len(h.Additions) > 0
}

// invert swaps deletions and additions, leaving context untouched.
func (h Hunk) invert() Hunk {
	return Hunk{
		ContextBefore: h.ContextBefore,
		Deletions:     h.Additions,
		Additions:     h.Deletions,
		ContextAfter:  h.ContextAfter,
	}
}

// Diff is an ordered sequence of hunks in file order. OldPath and NewPath
// are opaque display metadata from optional ---/+++ header lines; they never
// influence matching.
type Diff struct {
	OldPath string `json:"oldPath,omitempty"`
	NewPath string `json:"newPath,omitempty"`
	Hunks   []Hunk `json:"hunks"`
}

// isHunkHeader reports whether a line opens a hunk. The canonical header is
// the bare "@@ @@", but traditional unified headers such as
// "@@ -1,3 +1,3 @@ fn x" are tolerated with their ranges ignored.
func isHunkHeader(line string) bool {
	return strings.HasPrefix(line, "@@") && strings.Contains(line[2:], "@@")
}

// Parse converts the textual representation of a fuzzy diff into a Diff.
//
// The parser is a two-state machine: between hunks it only accepts hunk
// headers, ---/+++ metadata, and blank separators; inside a hunk every line's
// first character selects its role (' ' context, '-' deletion, '+' addition).
// Parse failures report the 1-based line number.
func Parse(input string) (*Diff, error) {
	diff := &Diff{}
	if strings.TrimSpace(input) == "" {
		return diff, nil
	}
	if !strings.Contains(input, "@@") {
		return nil, parseError(0, "no hunks found in diff")
	}

	var currentHunk *Hunk

	flushHunk := func() {
		if currentHunk == nil {
			return
		}
		diff.Hunks = append(diff.Hunks, *currentHunk)
		currentHunk = nil
	}

	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	for index, line := range strings.Split(normalized, "\n") {
		number := index + 1

		if isHunkHeader(line) {
			flushHunk()
			currentHunk = &Hunk{}
			continue
		}

		// Blank separators carry no hunk content. A genuinely empty line
		// inside a hunk body must be written as a lone marker.
		if line == "" {
			continue
		}

		if currentHunk == nil {
			// ---/+++ metadata is only recognized between hunks; inside a
			// hunk those bytes are a marker plus content (e.g. a deleted
			// line that itself starts with "--").
			if strings.HasPrefix(line, "---") {
				if diff.OldPath == "" {
					diff.OldPath = strings.TrimSpace(strings.TrimPrefix(line[3:], " filename:"))
				}
				continue
			}
			if strings.HasPrefix(line, "+++") {
				if diff.NewPath == "" {
					diff.NewPath = strings.TrimSpace(strings.TrimPrefix(line[3:], " filename:"))
				}
				continue
			}
			return nil, parseError(number, "line found outside of hunk: %q", line)
		}

		marker, content := line[0], line[1:]
		switch marker {
		case ' ':
			if currentHunk.hasChanges() {
				currentHunk.ContextAfter = append(currentHunk.ContextAfter, content)
			} else {
				currentHunk.ContextBefore = append(currentHunk.ContextBefore, content)
			}
		case '-':
			currentHunk.Deletions = append(currentHunk.Deletions, content)
		case '+':
			currentHunk.Additions = append(currentHunk.Additions, content)
		default:
			return nil, parseError(number, "invalid line prefix %q", string(marker))
		}
	}

	flushHunk()
	return diff, nil
}
