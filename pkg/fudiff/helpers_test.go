package fudiff

import "testing"

// requireError asserts err is a structured *Error and returns it.
func requireError(t *testing.T, err error) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	return perr
}

// mustParse parses a diff and fails the test on error.
func mustParse(t *testing.T, input string) *Diff {
	t.Helper()
	diff, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return diff
}
