package fudiff

import (
	"context"
	"strings"
	"testing"
)

func applyText(t *testing.T, target, diffText string, opts Options) string {
	t.Helper()
	result, err := mustParse(t, diffText).Apply(context.Background(), target, opts)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	return result
}

func TestApplyBasicPatch(t *testing.T) {
	t.Parallel()

	target := "fn main() {\n    println!(\"Hello\");\n}"
	diffText := "@@ @@\n fn main() {\n-    println!(\"Hello\");\n+    println!(\"Goodbye\");\n }"

	got := applyText(t, target, diffText, Options{})
	want := "fn main() {\n    println!(\"Goodbye\");\n}"
	if got != want {
		t.Fatalf("unexpected result:\n got %q\nwant %q", got, want)
	}
}

func TestApplyEmptyDiffReturnsInputUnchanged(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"", "start\nmiddle\nend", "start\n"} {
		if got := applyText(t, target, "", Options{}); got != target {
			t.Fatalf("empty diff changed %q into %q", target, got)
		}
	}
}

func TestApplyMultipleHunks(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\nd\ne"
	diffText := "@@ @@\n a\n-b\n+x\n c\n@@ @@\n d\n-e\n+y"

	if got := applyText(t, target, diffText, Options{}); got != "a\nx\nc\nd\ny" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyHunksWithSharedContext(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\nd\ne"
	diffText := "@@ @@\n a\n b\n-c\n+x\n@@ @@\n d\n-e\n+y"

	if got := applyText(t, target, diffText, Options{}); got != "a\nb\nx\nd\ny" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyHunksAtBothBoundaries(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc"
	diffText := "@@ @@\n-a\n+x\n@@ @@\n b\n-c\n+z"

	if got := applyText(t, target, diffText, Options{}); got != "x\nb\nz" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyDistantHunksStayIndependent(t *testing.T) {
	t.Parallel()

	target := "header\none\ntwo\nthree\nfour\nfive\nsix\nfooter\n"
	diffText := "@@ @@\n header\n-one\n+ONE\n@@ @@\n five\n-six\n+SIX\n footer"

	want := "header\nONE\ntwo\nthree\nfour\nfive\nSIX\nfooter\n"
	if got := applyText(t, target, diffText, Options{}); got != want {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyInsertionIntoEmptyInput(t *testing.T) {
	t.Parallel()

	if got := applyText(t, "", "@@ @@\n+new", Options{}); got != "new" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyInsertionAtStartOfFile(t *testing.T) {
	t.Parallel()

	target := "fn main() {\n    body();\n}\n"
	diffText := "@@ @@\n+// header\n fn main() {"

	want := "// header\nfn main() {\n    body();\n}\n"
	if got := applyText(t, target, diffText, Options{}); got != want {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyDeletionOfFirstLine(t *testing.T) {
	t.Parallel()

	if got := applyText(t, "a\nb\nc", "@@ @@\n-a", Options{}); got != "b\nc" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyDeletionOfLastLine(t *testing.T) {
	t.Parallel()

	if got := applyText(t, "a\nb\nc", "@@ @@\n b\n-c", Options{}); got != "a\nb" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyContextOnlyHunkLeavesInputAlone(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc"
	if got := applyText(t, target, "@@ @@\n a\n b", Options{}); got != target {
		t.Fatalf("context-only hunk changed input: %q", got)
	}
}

func TestApplyPreservesTabsAndIndentation(t *testing.T) {
	t.Parallel()

	target := "line 1\n  indented\nline 3"
	diffText := "@@ @@\n line 1\n-  indented\n+\treplaced"

	if got := applyText(t, target, diffText, Options{}); got != "line 1\n\treplaced\nline 3" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyFuzzyWhitespaceContext(t *testing.T) {
	t.Parallel()

	target := "value    one\nnext"
	diffText := "@@ @@\n value one\n-next\n+after"

	if got := applyText(t, target, diffText, Options{}); got != "value    one\nafter" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyStrictWhitespaceFailsOnDrift(t *testing.T) {
	t.Parallel()

	target := "value    one\nnext"
	diffText := "@@ @@\n value one\n-next\n+after"

	_, err := mustParse(t, diffText).Apply(context.Background(), target, Options{StrictWhitespace: true})
	perr := requireError(t, err)
	if perr.Code != ErrCodeNoMatch {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
}

func TestApplyTrailingNewlinePreserved(t *testing.T) {
	t.Parallel()

	diffText := "@@ @@\n-start\n+started"
	if got := applyText(t, "start", diffText, Options{}); got != "started" {
		t.Fatalf("unexpected result: %q", got)
	}
	if got := applyText(t, "start\n", diffText, Options{}); got != "started\n" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyFinalDeletionDropsTrailingNewline(t *testing.T) {
	t.Parallel()

	if got := applyText(t, "start\nend\n", "@@ @@\n start\n-end", Options{}); got != "start" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyMidFileDeletionKeepsTrailingNewline(t *testing.T) {
	t.Parallel()

	if got := applyText(t, "a\nb\nc\n", "@@ @@\n a\n-b\n c", Options{}); got != "a\nc\n" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyDeletionToEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := mustParse(t, "@@ @@\n-line\n+newline").Apply(context.Background(), "", Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeNoMatch {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
	if !strings.Contains(perr.Message, "empty input") {
		t.Fatalf("unexpected message: %q", perr.Message)
	}
}

func TestApplyContextNotFound(t *testing.T) {
	t.Parallel()

	_, err := mustParse(t, "@@ @@\n context\n-old\n+new").Apply(context.Background(), "wrong", Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeNoMatch {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
	if perr.FailedHunk == nil || perr.FailedHunk.Number != 1 {
		t.Fatalf("failed hunk not reported: %#v", perr.FailedHunk)
	}
}

func TestApplyDeletedLineNotFound(t *testing.T) {
	t.Parallel()

	_, err := mustParse(t, "@@ @@\n a\n-b\n+c").Apply(context.Background(), "a\nx\n", Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeDeletedLineNotFound {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
	if !strings.Contains(perr.Message, "expected \"b\"") {
		t.Fatalf("unexpected message: %q", perr.Message)
	}
}

func TestApplyDeletionIntegrityWithSurroundingContext(t *testing.T) {
	t.Parallel()

	_, err := mustParse(t, "@@ @@\n a\n-x\n c").Apply(context.Background(), "a\nb\nc\n", Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeDeletedLineNotFound {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
}

func TestApplyDeletionPastEndOfFile(t *testing.T) {
	t.Parallel()

	_, err := mustParse(t, "@@ @@\n-one\n-two").Apply(context.Background(), "one", Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeDeletedLineNotFound {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
}

func TestApplyAmbiguousContext(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\na\nb\nc\n"
	diffText := "@@ @@\n a\n-b\n+x\n c"

	_, err := mustParse(t, diffText).Apply(context.Background(), target, Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeAmbiguous {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
	if len(perr.Offsets) != 2 {
		t.Fatalf("unexpected offsets: %#v", perr.Offsets)
	}
}

func TestApplyFirstMatchResolvesAmbiguity(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\na\nb\nc\n"
	diffText := "@@ @@\n a\n-b\n+x\n c"

	if got := applyText(t, target, diffText, Options{FirstMatch: true}); got != "a\nx\nc\na\nb\nc\n" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyRepeatedContextDisambiguatedByDeletion(t *testing.T) {
	t.Parallel()

	target := "test\ntest\nend"
	diffText := "@@ @@\n test\n-end\n+new"

	if got := applyText(t, target, diffText, Options{}); got != "test\ntest\nnew" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestApplyContextlessInsertionInMultiHunkDiff(t *testing.T) {
	t.Parallel()

	diffText := "@@ @@\n a\n-b\n+x\n@@ @@\n+floating"
	_, err := mustParse(t, diffText).Apply(context.Background(), "a\nb\nc", Options{})
	perr := requireError(t, err)
	if perr.Code != ErrCodeInvalidHunk {
		t.Fatalf("unexpected code: %q", perr.Code)
	}
}

func TestApplyReportsHunkStatuses(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\nd\ne\nf\ng"
	diffText := "@@ @@\n a\n-b\n+x\n c\n@@ @@\n f\n-missing\n+y"

	_, err := mustParse(t, diffText).Apply(context.Background(), target, Options{})
	perr := requireError(t, err)
	if len(perr.HunkStatuses) == 0 {
		t.Fatalf("hunk statuses missing: %#v", perr)
	}
	last := perr.HunkStatuses[len(perr.HunkStatuses)-1]
	if last.Status == "applied" {
		t.Fatalf("failing hunk marked applied: %#v", perr.HunkStatuses)
	}
}

func TestApplyHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mustParse(t, "@@ @@\n a\n-b\n+x").Apply(ctx, "a\nb", Options{})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestApplyRecordsMetrics(t *testing.T) {
	t.Parallel()

	metrics := NewInMemoryMetrics()
	target := "a\nb\nc"
	diffText := "@@ @@\n a\n-b\n+x"

	if _, err := mustParse(t, diffText).Apply(context.Background(), target, Options{Metrics: metrics}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	snapshot := metrics.Snapshot()
	if snapshot.HunksApplied != 1 {
		t.Fatalf("expected one applied hunk, got %d", snapshot.HunksApplied)
	}
	if snapshot.Locates == 0 {
		t.Fatalf("locate not recorded: %#v", snapshot)
	}
}

func TestApplyDoesNotMutateDiff(t *testing.T) {
	t.Parallel()

	diff := mustParse(t, "@@ @@\n a\n-b\n+x\n c\n@@ @@\n c\n-d\n+y")
	target := "a\nb\nc\nd\ne"

	first, err := diff.Apply(context.Background(), target, Options{})
	if err != nil {
		t.Fatalf("first Apply returned error: %v", err)
	}
	second, err := diff.Apply(context.Background(), target, Options{})
	if err != nil {
		t.Fatalf("second Apply returned error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated application diverged: %q vs %q", first, second)
	}
}
