package fudiff

// lookAhead is the re-sync window of the generator: how many lines it scans
// forward to find the next shared line, and the most inter-hunk context it
// keeps.
const lookAhead = 3

// Create generates a fuzzy diff between two texts.
//
// The generator walks both texts line by line: shared lines become context,
// and whenever the texts disagree it searches a small window for the nearest
// re-sync point, emitting the skipped lines as deletions and additions. Lines
// matched after a change seed the next hunk's leading context, so every
// produced hunk anchors on the context in front of it. The output is always
// parseable by Parse and applies cleanly: Create(old, new).Apply(old) == new.
func Create(old, new string) *Diff {
	oldLines := SplitLines(old, Options{}).Items
	newLines := SplitLines(new, Options{}).Items

	diff := &Diff{}
	var current Hunk

	i, j := 0, 0
	for i < len(oldLines) && j < len(newLines) && oldLines[i] == newLines[j] {
		current.ContextBefore = append(current.ContextBefore, oldLines[i])
		i++
		j++
	}

	for i < len(oldLines) || j < len(newLines) {
		di, dj, found := nextResync(oldLines, newLines, i, j)
		if !found {
			current.Deletions = append(current.Deletions, oldLines[i:]...)
			current.Additions = append(current.Additions, newLines[j:]...)
			break
		}

		current.Deletions = append(current.Deletions, oldLines[i:i+di]...)
		current.Additions = append(current.Additions, newLines[j:j+dj]...)
		i += di
		j += dj

		matches := 0
		for i+matches < len(oldLines) && j+matches < len(newLines) &&
			oldLines[i+matches] == newLines[j+matches] && matches < lookAhead {
			current.ContextAfter = append(current.ContextAfter, oldLines[i+matches])
			matches++
		}
		i += matches
		j += matches

		if current.hasChanges() {
			// The re-sync context both closes this hunk and anchors the next
			// one.
			next := Hunk{ContextBefore: current.ContextAfter}
			current.ContextAfter = nil
			diff.Hunks = append(diff.Hunks, current)
			current = next
		}
	}

	if current.hasChanges() {
		diff.Hunks = append(diff.Hunks, current)
	}
	return diff
}

// nextResync scans a widening window for the nearest pair of equal lines
// strictly ahead of the current positions.
func nextResync(oldLines, newLines []string, i, j int) (int, int, bool) {
	for offset := 0; offset <= lookAhead; offset++ {
		for di := 0; di <= offset; di++ {
			for dj := 0; dj <= offset; dj++ {
				if di == 0 && dj == 0 {
					continue
				}
				if i+di < len(oldLines) && j+dj < len(newLines) && oldLines[i+di] == newLines[j+dj] {
					return di, dj, true
				}
			}
		}
	}
	return 0, 0, false
}
