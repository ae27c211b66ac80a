package fudiff

import "context"

// Revert undoes a previously applied diff: every hunk's deletions and
// additions are swapped while context and hunk order stay put (context lines
// were never mutated by the forward application, so each hunk still anchors
// on its own). The inverted diff then runs through the regular apply
// pipeline against the modified text, with the same error taxonomy: if the
// text changed by anything other than this exact diff, context or deletion
// checks fail.
func (d *Diff) Revert(ctx context.Context, text string, opts Options) (string, error) {
	return d.Invert().Apply(ctx, text, opts)
}

// Invert returns the inverse diff, with every hunk's deletions and additions
// swapped.
func (d *Diff) Invert() *Diff {
	inverted := &Diff{
		OldPath: d.NewPath,
		NewPath: d.OldPath,
		Hunks:   make([]Hunk, 0, len(d.Hunks)),
	}
	for _, hunk := range d.Hunks {
		inverted.Hunks = append(inverted.Hunks, hunk.invert())
	}
	return inverted
}
