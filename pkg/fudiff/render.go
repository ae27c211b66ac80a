package fudiff

import "strings"

// Render serializes the diff back to its canonical wire form: optional
// metadata headers, then each hunk under a bare "@@ @@" header. The output
// is the exact inverse of Parse: Parse(d.Render()) reproduces d.
func (d *Diff) Render() string {
	var builder strings.Builder
	if d.OldPath != "" {
		builder.WriteString("--- filename: ")
		builder.WriteString(d.OldPath)
		builder.WriteByte('\n')
	}
	if d.NewPath != "" {
		builder.WriteString("+++ filename: ")
		builder.WriteString(d.NewPath)
		builder.WriteByte('\n')
	}

	for _, hunk := range d.Hunks {
		builder.WriteString("@@ @@\n")
		writeBodyLines(&builder, ' ', hunk.ContextBefore)
		writeBodyLines(&builder, '-', hunk.Deletions)
		writeBodyLines(&builder, '+', hunk.Additions)
		writeBodyLines(&builder, ' ', hunk.ContextAfter)
	}
	return builder.String()
}

// String renders the diff.
func (d *Diff) String() string {
	return d.Render()
}

// renderHunk returns the wire-format lines of a single hunk, header included,
// for error reports and previews.
func renderHunk(h Hunk) []string {
	lines := make([]string, 0, 1+len(h.ContextBefore)+len(h.Deletions)+len(h.Additions)+len(h.ContextAfter))
	lines = append(lines, "@@ @@")
	for _, line := range h.ContextBefore {
		lines = append(lines, " "+line)
	}
	for _, line := range h.Deletions {
		lines = append(lines, "-"+line)
	}
	for _, line := range h.Additions {
		lines = append(lines, "+"+line)
	}
	for _, line := range h.ContextAfter {
		lines = append(lines, " "+line)
	}
	return lines
}

func writeBodyLines(builder *strings.Builder, marker byte, lines []string) {
	for _, line := range lines {
		builder.WriteByte(marker)
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
}
