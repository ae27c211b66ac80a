package fudiff

import (
	"context"
	"sort"
)

// ApplyToMemory applies per-file diffs to an in-memory document store
// represented by a map. The provided map is copied before mutation and the
// updated snapshot is returned, so a failed patch leaves the input untouched.
//
// A path absent from the store is treated as an empty document, which lets a
// diff made of pure insertions create the file. Paths are patched in sorted
// order so results are deterministic.
func ApplyToMemory(ctx context.Context, patches map[string]*Diff, files map[string]string, opts Options) (map[string]string, []Result, error) {
	snapshot := make(map[string]string, len(files))
	for path, content := range files {
		snapshot[path] = content
	}

	paths := make([]string, 0, len(patches))
	for path := range patches {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		content, existed := snapshot[path]
		updated, err := patches[path].Apply(ctx, content, opts)
		if err != nil {
			return nil, nil, err
		}
		snapshot[path] = updated

		status := "M"
		if !existed {
			status = "A"
		}
		results = append(results, Result{Status: status, Path: path})
	}
	return snapshot, results, nil
}

// RevertInMemory undoes per-file diffs against an in-memory document store,
// with the same copy-before-mutation contract as ApplyToMemory.
func RevertInMemory(ctx context.Context, patches map[string]*Diff, files map[string]string, opts Options) (map[string]string, []Result, error) {
	inverted := make(map[string]*Diff, len(patches))
	for path, diff := range patches {
		inverted[path] = diff.Invert()
	}
	return ApplyToMemory(ctx, inverted, files, opts)
}
