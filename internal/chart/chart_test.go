package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tradeboard/internal/chartstate"
	"github.com/alexisbeaulieu97/tradeboard/internal/dataset"
)

// dailyBars returns n bars one day apart ending on 2024-06-28.
func dailyBars(n int) []dataset.Candle {
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	bars := make([]dataset.Candle, n)
	for i := range bars {
		at := end.AddDate(0, 0, i-n+1)
		price := 100 + float64(i%7)
		bars[i] = dataset.Candle{Time: at.UnixMilli(), Open: price, High: price + 2, Low: price - 2, Close: price + 1}
	}
	return bars
}

func TestGetOptionsReportsRangeOnlyWhenZoomed(t *testing.T) {
	m := New("AAPL", dailyBars(100))
	opts := m.GetOptions()
	assert.Nil(t, opts.Range)
	assert.Equal(t, chartstate.Candlestick, opts.ChartKind)
	assert.Equal(t, "AAPL", opts.Title)

	m.ZoomIn()
	opts = m.GetOptions()
	require.NotNil(t, opts.Range)
	start, end := m.Window()
	assert.Equal(t, 50, end-start)
	assert.Equal(t, m.data[start].Time, opts.Range.Start)
	assert.Equal(t, m.data[end-1].Time, opts.Range.End)
}

func TestInteractionsRaiseOnChange(t *testing.T) {
	var events int
	m := New("AAPL", dailyBars(100), WithOnChange(func(chartstate.Widget) { events++ }))

	m.ZoomIn()
	m.Pan(-10)
	m.Pan(-1000)
	start, _ := m.Window()
	assert.Zero(t, start)
	m.Pan(-1)
	m.CycleKind()
	m.ZoomOut()
	assert.Equal(t, "All", m.ActiveButton())
	m.ZoomOut()

	assert.Equal(t, 5, events)
	assert.Equal(t, chartstate.OHLC, m.Kind())
}

func TestZoomInStopsAtMinimum(t *testing.T) {
	m := New("AAPL", dailyBars(12))
	m.ZoomIn()
	m.ZoomIn()
	m.ZoomIn()
	start, end := m.Window()
	assert.Equal(t, minVisibleBars, end-start)
}

func TestRangeButtons(t *testing.T) {
	m := New("AAPL", dailyBars(400))

	require.True(t, m.SelectRange("1M"))
	assert.Equal(t, "1M", m.ActiveButton())
	first := m.Visible()[0].At()
	assert.Equal(t, time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC), first)

	require.True(t, m.SelectRange("YTD"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.Visible()[0].At())

	require.True(t, m.SelectRange("All"))
	assert.Nil(t, m.GetOptions().Range)
	assert.False(t, m.SelectRange("5Y"))

	m.ZoomIn()
	assert.Empty(t, m.ActiveButton())
}

func TestRestoreDoesNotNotify(t *testing.T) {
	bars := dailyBars(60)
	called := false
	m := New("MSFT", bars, WithOnChange(func(chartstate.Widget) { called = true }))

	m.Restore(chartstate.ViewState{
		ChartKind: chartstate.Line,
		DateRange: &chartstate.Range{Start: bars[10].Time, End: bars[19].Time},
	})
	assert.False(t, called)
	assert.Equal(t, chartstate.Line, m.Kind())
	start, end := m.Window()
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	// A window outside the series is ignored.
	m.Restore(chartstate.ViewState{DateRange: &chartstate.Range{Start: 1, End: 2}})
	start, end = m.Window()
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
}

func TestViewRendersEveryKind(t *testing.T) {
	m := New("TSLA", dailyBars(200), WithSize(60, 12))
	for _, kind := range chartstate.Kinds {
		m.SetKind(kind)
		out := m.View()
		assert.Contains(t, out, "TSLA")
		assert.Contains(t, out, string(kind))
		assert.Contains(t, out, "Jun 28, 2024")
	}

	empty := New("NONE", nil)
	assert.Contains(t, empty.View(), "no price data")
}

func TestBucketMergesBars(t *testing.T) {
	bars := dailyBars(10)
	merged := bucket(bars, 3)
	require.Len(t, merged, 3)
	assert.Equal(t, bars[0].Open, merged[0].Open)
	assert.Equal(t, bars[2].Close, merged[0].Close)
	assert.Equal(t, bars[9].Time, merged[2].Time)
}
