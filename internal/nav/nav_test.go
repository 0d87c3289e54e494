package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesHaveStableIDs(t *testing.T) {
	first := Entries()
	second := Entries()
	require.Len(t, first, 3)

	seen := map[string]bool{}
	for i, e := range first {
		assert.Equal(t, e.ID, second[i].ID)
		assert.False(t, seen[e.ID.String()])
		seen[e.ID.String()] = true
		assert.Equal(t, 5, int(e.ID.Version()))
	}
	assert.Equal(t, "Home", first[0].Name)
}

func TestActiveTitle(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{route: "/", want: "Trade Table"},
		{route: "", want: "Trade Table"},
		{route: "/table-overview", want: "Table Overview"},
		{route: "/table-overview/", want: "Table Overview"},
		{route: "candle-sticks", want: "Candlestick Charts"},
		{route: "/candle-sticks/AAPL", want: "Candlestick Charts"},
		{route: "/settings", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveTitle(tt.route))
		})
	}
}

func TestBreadcrumb(t *testing.T) {
	assert.Equal(t, []Crumb{{Label: "Home", Href: "/"}}, Breadcrumb("/"))
	assert.Equal(t, []Crumb{
		{Label: "Home", Href: "/"},
		{Label: "candle-sticks", Href: "/candle-sticks"},
		{Label: "AAPL stock", Href: "/candle-sticks/AAPL%20stock"},
	}, Breadcrumb("/candle-sticks/AAPL%20stock"))
}
