package fudiff

import "strings"

// Lines is an ordered sequence of logical lines split from a text buffer,
// together with a record of whether the buffer ended with a newline. Joining
// the sequence reproduces the original buffer exactly.
type Lines struct {
	Items           []string
	TrailingNewline bool
}

// SplitLines splits text on \n boundaries. A trailing \r is stripped from
// each line unless opts.KeepCarriageReturns is set. Empty input yields zero
// lines; a lone "\n" yields a single empty line with the trailing flag set.
func SplitLines(text string, opts Options) Lines {
	if text == "" {
		return Lines{}
	}
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = text[:len(text)-1]
	}
	items := strings.Split(text, "\n")
	if !opts.KeepCarriageReturns {
		for i, line := range items {
			items[i] = strings.TrimSuffix(line, "\r")
		}
	}
	return Lines{Items: items, TrailingNewline: trailing}
}

// Join is the inverse of SplitLines for inputs without carriage returns, and
// in general reconstitutes the sequence with \n separators plus the recorded
// trailing newline.
func (l Lines) Join() string {
	if len(l.Items) == 0 {
		return ""
	}
	joined := strings.Join(l.Items, "\n")
	if l.TrailingNewline {
		joined += "\n"
	}
	return joined
}
