// Package rating orders credit ratings from best to worst.
package rating

import "fmt"

// Unknown is the rank given to values outside the rating scale.
const Unknown = 999

// Scale lists the ratings from best to worst.
var Scale = []string{
	"AAA", "AA+", "AA", "AA-",
	"A+", "A", "A-",
	"BBB+", "BBB", "BBB-",
	"BB+", "BB", "BB-",
	"B+", "B", "B-",
	"CCC+", "CCC", "CCC-",
	"CC", "C", "D",
}

var ranks = func() map[string]int {
	m := make(map[string]int, len(Scale))
	for i, r := range Scale {
		m[r] = i + 1
	}
	return m
}()

// Rank returns the 1-based position of r on the scale, or Unknown.
func Rank(r string) int {
	if rank, ok := ranks[r]; ok {
		return rank
	}
	return Unknown
}

// Compare returns a negative number when a ranks better than b, zero when
// they rank the same and a positive number otherwise. Values are matched
// exactly; unknown values sort after every known rating.
func Compare(a, b any) int {
	return Rank(asString(a)) - Rank(asString(b))
}

// InvestmentGrade reports whether r is BBB- or better.
func InvestmentGrade(r string) bool {
	return Rank(r) <= ranks["BBB-"]
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
