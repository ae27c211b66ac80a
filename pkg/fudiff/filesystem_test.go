package fudiff

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyFileRewritesTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	diff := mustParse(t, "@@ @@\n a\n-b\n+x\n c")
	result, err := ApplyFile(context.Background(), diff, "sample.txt", FilesystemOptions{WorkingDir: dir})
	if err != nil {
		t.Fatalf("ApplyFile returned error: %v", err)
	}
	if result.Status != "M" || result.Path != "sample.txt" {
		t.Fatalf("unexpected result: %#v", result)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "a\nx\nc\n" {
		t.Fatalf("unexpected content: %q", content)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("permissions not preserved: %v", info.Mode())
	}
}

func TestRevertFileRestoresOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("a\nx\nc\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	diff := mustParse(t, "@@ @@\n a\n-b\n+x\n c")
	if _, err := RevertFile(context.Background(), diff, "sample.txt", FilesystemOptions{WorkingDir: dir}); err != nil {
		t.Fatalf("RevertFile returned error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "a\nb\nc\n" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestApplyFileLeavesTargetOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("unrelated\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	diff := mustParse(t, "@@ @@\n missing\n-old\n+new")
	if _, err := ApplyFile(context.Background(), diff, "sample.txt", FilesystemOptions{WorkingDir: dir}); err == nil {
		t.Fatalf("expected error")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "unrelated\n" {
		t.Fatalf("target mutated on failure: %q", content)
	}
}

func TestApplyFileRejectsMissingFile(t *testing.T) {
	t.Parallel()

	diff := mustParse(t, "@@ @@\n-a\n+b")
	if _, err := ApplyFile(context.Background(), diff, "absent.txt", FilesystemOptions{WorkingDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestApplyFileRejectsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	diff := mustParse(t, "@@ @@\n-a\n+b")
	if _, err := ApplyFile(context.Background(), diff, "sub", FilesystemOptions{WorkingDir: dir}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestApplyFileRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	diff := mustParse(t, "@@ @@\n-a\n+b")
	if _, err := ApplyFile(context.Background(), diff, "   ", FilesystemOptions{WorkingDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error")
	}
}
