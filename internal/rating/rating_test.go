package rating

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareFollowsScale(t *testing.T) {
	assert.Len(t, Scale, 22)

	for i, a := range Scale {
		for j, b := range Scale {
			got := Compare(a, b)
			switch {
			case i < j:
				assert.Negative(t, got, "%s vs %s", a, b)
			case i > j:
				assert.Positive(t, got, "%s vs %s", a, b)
			default:
				assert.Zero(t, got, "%s vs %s", a, b)
			}
		}
	}
}

func TestUnknownRatingsSortLast(t *testing.T) {
	for _, known := range Scale {
		assert.Positive(t, Compare("NR", known))
		assert.Negative(t, Compare(known, "NR"))
	}

	assert.Zero(t, Compare("NR", "WR"))
	assert.Zero(t, Compare(nil, "aaa"))
}

func TestSortRatings(t *testing.T) {
	values := []string{"D", "NR", "AAA", "BBB-", "AA+", "??", "CCC"}
	sort.SliceStable(values, func(i, j int) bool { return Compare(values[i], values[j]) < 0 })

	assert.Equal(t, []string{"AAA", "AA+", "BBB-", "CCC", "D", "NR", "??"}, values)
}

func TestInvestmentGrade(t *testing.T) {
	assert.True(t, InvestmentGrade("AAA"))
	assert.True(t, InvestmentGrade("BBB-"))
	assert.False(t, InvestmentGrade("BB+"))
	assert.False(t, InvestmentGrade("unrated"))
}
