package columns

import (
	"cmp"
	"strings"
)

// Missing values sort before present ones in every comparator here, matching
// an ascending sort that lists blanks first.

// CompareNumbers orders numeric values.
func CompareNumbers(a, b any) int {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if c, done := presence(okA, okB); done {
		return c
	}
	return cmp.Compare(fa, fb)
}

// CompareDates orders timestamps.
func CompareDates(a, b any) int {
	ta, okA := toTime(a)
	tb, okB := toTime(b)
	if c, done := presence(okA, okB); done {
		return c
	}
	return ta.Compare(tb)
}

// CompareText orders values by their string form, ignoring case.
func CompareText(a, b any) int {
	if c, done := presence(a != nil, b != nil); done {
		return c
	}
	sa, sb := strings.ToLower(plain(a)), strings.ToLower(plain(b))
	if c := strings.Compare(sa, sb); c != 0 {
		return c
	}
	return strings.Compare(plain(a), plain(b))
}

func presence(okA, okB bool) (int, bool) {
	switch {
	case !okA && !okB:
		return 0, true
	case !okA:
		return -1, true
	case !okB:
		return 1, true
	default:
		return 0, false
	}
}
