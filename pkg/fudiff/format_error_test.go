package fudiff

import (
	"context"
	"strings"
	"testing"
)

func TestFormatErrorNil(t *testing.T) {
	t.Parallel()

	if got := FormatError(nil); got != "Unknown error occurred." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestFormatErrorParseIncludesLine(t *testing.T) {
	t.Parallel()

	_, err := Parse("@@ @@\n context\n# invalid")
	perr := requireError(t, err)

	formatted := FormatError(perr)
	if !strings.Contains(formatted, "Parse error on line 3") {
		t.Fatalf("line number missing: %q", formatted)
	}
}

func TestFormatErrorAmbiguousListsCandidates(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\na\nb\nc\n"
	_, err := mustParse(t, "@@ @@\n a\n-b\n+x\n c").Apply(context.Background(), target, Options{})
	perr := requireError(t, err)

	formatted := FormatError(perr)
	if !strings.Contains(formatted, "Candidate locations (lines): 1, 4.") {
		t.Fatalf("candidate list missing: %q", formatted)
	}
}

func TestFormatErrorOverlapNamesHunks(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc"
	diffText := "@@ @@\n a\n-b\n+x\n@@ @@\n a\n-b\n+y"
	_, err := mustParse(t, diffText).Apply(context.Background(), target, Options{})
	perr := requireError(t, err)

	formatted := FormatError(perr)
	if !strings.Contains(formatted, "Conflicting hunks: 1 and 2.") {
		t.Fatalf("hunk pair missing: %q", formatted)
	}
}

func TestFormatErrorIncludesHunkReport(t *testing.T) {
	t.Parallel()

	target := "a\nb\nc\nd\ne\nf\ng"
	diffText := "@@ @@\n a\n-b\n+x\n c\n@@ @@\n f\n-missing\n+y"
	_, err := mustParse(t, diffText).Apply(context.Background(), target, Options{})
	perr := requireError(t, err)

	formatted := FormatError(perr)
	if !strings.Contains(formatted, "Hunks applied: 1.") {
		t.Fatalf("applied summary missing: %q", formatted)
	}
	if !strings.Contains(formatted, "No match for hunk 2.") {
		t.Fatalf("failure summary missing: %q", formatted)
	}
	if !strings.Contains(formatted, "Offending hunk:") {
		t.Fatalf("offending hunk missing: %q", formatted)
	}
	if !strings.Contains(formatted, "-missing") {
		t.Fatalf("raw hunk lines missing: %q", formatted)
	}
}

func TestErrorStringFallsBackToGenericMessage(t *testing.T) {
	t.Parallel()

	if got := (&Error{}).Error(); got != "fudiff error" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := (&Error{Message: "boom"}).Error(); got != "boom" {
		t.Fatalf("unexpected message: %q", got)
	}
}
