// Package dataset provides the demo rows and price series the dashboard
// renders. Fixtures are embedded; a directory with the same file names can
// replace them.
package dataset

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

//go:embed data/*.json
var embedded embed.FS

// Row is one record of a table.
type Row = map[string]any

// Candle is one OHLC price bar. Time is epoch milliseconds.
type Candle struct {
	Time  int64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// At returns the bar time in UTC.
func (c Candle) At() time.Time { return time.UnixMilli(c.Time).UTC() }

// Source reads fixture files by table or symbol name.
type Source struct {
	fsys fs.FS
}

// Embedded returns the built-in fixtures.
func Embedded() *Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return &Source{fsys: sub}
}

// FromFS reads fixtures from fsys, e.g. os.DirFS of a data directory.
func FromFS(fsys fs.FS) *Source { return &Source{fsys: fsys} }

// Rows loads the rows of a table, e.g. "trades" from trades.json.
func (s *Source) Rows(table string) ([]Row, error) {
	doc, err := s.document(table)
	if err != nil {
		return nil, err
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("dataset %s: expected an array of rows", table)
	}

	items := doc.Array()
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row, ok := item.Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("dataset %s: row %d is not an object", table, i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Candles loads the price series of symbol. Each entry is
// [time, open, high, low, close]; the series is returned in time order.
func (s *Source) Candles(symbol string) ([]Candle, error) {
	name := strings.ToLower(symbol)
	doc, err := s.document(name)
	if err != nil {
		return nil, err
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("dataset %s: expected an array of bars", name)
	}

	bars := doc.Array()
	candles := make([]Candle, 0, len(bars))
	for i, bar := range bars {
		fields := bar.Array()
		if len(fields) < 5 {
			return nil, fmt.Errorf("dataset %s: bar %d has %d fields, want 5", name, i, len(fields))
		}
		candles = append(candles, Candle{
			Time:  fields[0].Int(),
			Open:  fields[1].Float(),
			High:  fields[2].Float(),
			Low:   fields[3].Float(),
			Close: fields[4].Float(),
		})
	}
	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return candles, nil
}

func (s *Source) document(name string) (gjson.Result, error) {
	raw, err := fs.ReadFile(s.fsys, name+".json")
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read dataset %s: %w", name, err)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("dataset %s: invalid JSON", name)
	}
	return gjson.ParseBytes(raw), nil
}
