package fudiff

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemOptions augments Options with a working directory used to resolve
// relative paths when touching the local filesystem.
type FilesystemOptions struct {
	Options
	WorkingDir string
}

// Result describes the outcome of patching a file on disk.
type Result struct {
	Status string
	Path   string
}

// ApplyFile reads the target file, applies the diff, and writes the result
// back preserving the original permission bits.
func ApplyFile(ctx context.Context, diff *Diff, path string, opts FilesystemOptions) (Result, error) {
	return patchFile(ctx, diff, path, opts, false)
}

// RevertFile reads the target file, reverts the diff, and writes the result
// back preserving the original permission bits.
func RevertFile(ctx context.Context, diff *Diff, path string, opts FilesystemOptions) (Result, error) {
	return patchFile(ctx, diff, path, opts, true)
}

func patchFile(ctx context.Context, diff *Diff, path string, opts FilesystemOptions, revert bool) (Result, error) {
	abs, rel, err := resolvePath(path, opts.WorkingDir)
	if err != nil {
		return Result{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("cannot patch directory %s", rel)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	var updated string
	if revert {
		updated, err = diff.Revert(ctx, string(content), opts.Options)
	} else {
		updated, err = diff.Apply(ctx, string(content), opts.Options)
	}
	if err != nil {
		return Result{}, err
	}

	perm := info.Mode() & fs.ModePerm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(abs, []byte(updated), perm); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return Result{Status: "M", Path: rel}, nil
}

func resolvePath(relative, workingDir string) (string, string, error) {
	rel := strings.TrimSpace(relative)
	if rel == "" {
		return "", "", fmt.Errorf("invalid target path")
	}
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		workingDir = wd
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return cleaned, cleaned, nil
	}
	return filepath.Clean(filepath.Join(workingDir, cleaned)), cleaned, nil
}
