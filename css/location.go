package css

// Location is a half-open range [Start, End) into the preprocessed
// source sequence produced by preprocess. Offsets are indices into
// that rune sequence, not raw UTF-8 byte offsets — preprocessing can
// shrink the sequence (a "\r\n" pair collapses to one "\n"), so rune
// indices are the only offsets that stay stable across every stage
// downstream of the preprocessor.
type Location struct {
	Start int
	End   int
}

// Len reports the number of runes the location spans.
func (l Location) Len() int { return l.End - l.Start }

// cover returns the smallest Location containing both l and other.
// A zero-value Location is treated as empty: covering it with another
// Location yields the other one, which is why callers use it as the
// seed when folding cover over a list.
func (l Location) cover(other Location) Location {
	if l == (Location{}) {
		return other
	}
	if other == (Location{}) {
		return l
	}
	start, end := l.Start, l.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Location{Start: start, End: end}
}

// coverAll folds cover across a list of located values.
func coverAll[T interface{ location() Location }](items []T, seed Location) Location {
	loc := seed
	for _, item := range items {
		loc = loc.cover(item.location())
	}
	return loc
}
