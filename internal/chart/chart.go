// Package chart draws a price series in the terminal as candlesticks, OHLC
// bars or a close line, with zoom, pan and range buttons.
package chart

import (
	"time"

	"github.com/alexisbeaulieu97/tradeboard/internal/chartstate"
	"github.com/alexisbeaulieu97/tradeboard/internal/dataset"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

// RangeButton selects a window ending at the last bar.
type RangeButton struct {
	Label string
	// Span returns the window start for a series ending at last.
	Span func(last time.Time) time.Time
}

// RangeButtons are offered in display order. "All" clears the window.
var RangeButtons = []RangeButton{
	{Label: "1M", Span: func(t time.Time) time.Time { return t.AddDate(0, -1, 0) }},
	{Label: "3M", Span: func(t time.Time) time.Time { return t.AddDate(0, -3, 0) }},
	{Label: "6M", Span: func(t time.Time) time.Time { return t.AddDate(0, -6, 0) }},
	{Label: "YTD", Span: func(t time.Time) time.Time { return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location()) }},
	{Label: "1Y", Span: func(t time.Time) time.Time { return t.AddDate(-1, 0, 0) }},
	{Label: "All"},
}

const minVisibleBars = 5

// Option configures a Model.
type Option func(*Model)

// WithKind sets the initial chart kind.
func WithKind(kind chartstate.Kind) Option {
	return func(m *Model) {
		if kind.Valid() {
			m.kind = kind
		}
	}
}

// WithTheme sets the palette.
func WithTheme(name theme.Name) Option {
	return func(m *Model) { m.palette = name }
}

// WithSize sets the drawing area.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

// WithOnChange registers a callback raised after every user interaction that
// changes the kind or the visible window.
func WithOnChange(fn func(chartstate.Widget)) Option {
	return func(m *Model) { m.onChange = fn }
}

// Model is the chart widget. Start and end index the visible bars, end
// exclusive.
type Model struct {
	title    string
	data     []dataset.Candle
	kind     chartstate.Kind
	palette  theme.Name
	width    int
	height   int
	start    int
	end      int
	button   string
	onChange func(chartstate.Widget)
}

// New creates a chart over data showing every bar.
func New(title string, data []dataset.Candle, opts ...Option) *Model {
	m := &Model{
		title:   title,
		data:    data,
		kind:    chartstate.Candlestick,
		palette: theme.Dark,
		width:   80,
		height:  20,
		end:     len(data),
		button:  "All",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOptions reports what the chart shows. Range is nil while every bar is
// visible.
func (m *Model) GetOptions() chartstate.Options {
	opts := chartstate.Options{
		Data:      m.data,
		ChartKind: m.kind,
		Theme:     m.palette,
		Width:     m.width,
		Height:    m.height,
		Title:     m.title,
	}
	if len(m.data) > 0 && (m.start > 0 || m.end < len(m.data)) {
		opts.Range = &chartstate.Range{Start: m.data[m.start].Time, End: m.data[m.end-1].Time}
	}
	return opts
}

// Restore applies a persisted state without raising OnChange. A range that
// matches no bars is ignored.
func (m *Model) Restore(state chartstate.ViewState) {
	if state.ChartKind.Valid() {
		m.kind = state.ChartKind
	}
	if state.DateRange == nil {
		return
	}
	start, end := m.indexRange(state.DateRange.Start, state.DateRange.End)
	if end-start < 1 {
		return
	}
	m.start, m.end = start, end
	m.button = ""
}

// Kind returns the chart kind.
func (m *Model) Kind() chartstate.Kind { return m.kind }

// ActiveButton returns the selected range button label, empty after a zoom
// or pan.
func (m *Model) ActiveButton() string { return m.button }

// Window returns the visible bar indexes, end exclusive.
func (m *Model) Window() (start, end int) { return m.start, m.end }

// Visible returns the visible bars.
func (m *Model) Visible() []dataset.Candle { return m.data[m.start:m.end] }

// SetTheme switches palettes.
func (m *Model) SetTheme(name theme.Name) { m.palette = name }

// Resize sets the drawing area.
func (m *Model) Resize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
}

// CycleKind advances candlestick → ohlc → line.
func (m *Model) CycleKind() {
	m.SetKind(m.kind.Next())
}

// SetKind switches the series type.
func (m *Model) SetKind(kind chartstate.Kind) {
	if !kind.Valid() || kind == m.kind {
		return
	}
	m.kind = kind
	m.changed()
}

// ZoomIn halves the window around its center.
func (m *Model) ZoomIn() {
	size := m.end - m.start
	if size <= minVisibleBars {
		return
	}
	next := size / 2
	if next < minVisibleBars {
		next = minVisibleBars
	}
	center := m.start + size/2
	m.setWindow(center-next/2, center-next/2+next)
}

// ZoomOut doubles the window around its center.
func (m *Model) ZoomOut() {
	size := m.end - m.start
	if size >= len(m.data) {
		return
	}
	next := size * 2
	center := m.start + size/2
	m.setWindow(center-next/2, center-next/2+next)
}

// Pan shifts the window by delta bars.
func (m *Model) Pan(delta int) {
	if delta == 0 {
		return
	}
	size := m.end - m.start
	start := m.start + delta
	if start < 0 {
		start = 0
	}
	if start+size > len(m.data) {
		start = len(m.data) - size
	}
	m.setWindow(start, start+size)
}

// SelectRange applies a range button by label.
func (m *Model) SelectRange(label string) bool {
	for _, b := range RangeButtons {
		if b.Label != label {
			continue
		}
		if len(m.data) == 0 {
			return false
		}
		start := 0
		if b.Span != nil {
			last := m.data[len(m.data)-1].At()
			from := b.Span(last).UnixMilli()
			start, _ = m.indexRange(from, m.data[len(m.data)-1].Time)
		}
		changed := start != m.start || m.end != len(m.data)
		m.start, m.end = start, len(m.data)
		m.button = b.Label
		if changed {
			m.changed()
		}
		return true
	}
	return false
}

func (m *Model) setWindow(start, end int) {
	if start < 0 {
		end -= start
		start = 0
	}
	if end > len(m.data) {
		start -= end - len(m.data)
		end = len(m.data)
	}
	if start < 0 {
		start = 0
	}
	if start == m.start && end == m.end {
		return
	}
	m.start, m.end = start, end
	m.button = ""
	if m.start == 0 && m.end == len(m.data) {
		m.button = "All"
	}
	m.changed()
}

// indexRange maps a time window to bar indexes, end exclusive.
func (m *Model) indexRange(from, to int64) (int, int) {
	start, end := len(m.data), 0
	for i, c := range m.data {
		if c.Time >= from && start == len(m.data) {
			start = i
		}
		if c.Time <= to {
			end = i + 1
		}
	}
	if start > end {
		return 0, 0
	}
	return start, end
}

func (m *Model) changed() {
	if m.onChange != nil {
		m.onChange(m)
	}
}
