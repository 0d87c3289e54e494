// Package chartstate persists what a price chart shows: its kind and zoom
// range per symbol, plus the selected symbol.
package chartstate

import (
	"github.com/alexisbeaulieu97/tradeboard/internal/dataset"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

// Kind is a chart series type.
type Kind string

const (
	Candlestick Kind = "candlestick"
	OHLC        Kind = "ohlc"
	Line        Kind = "line"
)

// Kinds lists the chart kinds in cycle order.
var Kinds = []Kind{Candlestick, OHLC, Line}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Next returns the kind after k, wrapping around.
func (k Kind) Next() Kind {
	for i, known := range Kinds {
		if k == known {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return Candlestick
}

// Range is a visible time window in epoch milliseconds.
type Range struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// ViewState is the persisted chart state of one symbol.
type ViewState struct {
	ChartKind Kind   `json:"chartKind"`
	DateRange *Range `json:"dateRange,omitempty"`
}

// Options describe what a chart widget currently shows.
type Options struct {
	Data      []dataset.Candle
	ChartKind Kind
	Theme     theme.Name
	Width     int
	Height    int
	Title     string
	Range     *Range
}

// Widget is a chart that can report its options.
type Widget interface {
	GetOptions() Options
}

// Snapshot extracts the persisted part of opts.
func Snapshot(opts Options) ViewState {
	state := ViewState{ChartKind: opts.ChartKind}
	if opts.Range != nil {
		r := *opts.Range
		state.DateRange = &r
	}
	return state
}
