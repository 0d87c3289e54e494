// Package columns describes table columns: labels, filter kinds, value
// formatters and comparators.
package columns

import (
	"strings"
)

// Kind classifies a column's values.
type Kind string

const (
	Text    Kind = "text"
	Numeric Kind = "numeric"
	Date    Kind = "date"
)

// FilterKind selects the filter offered for a column.
type FilterKind string

const (
	TextFilter   FilterKind = "text"
	NumberFilter FilterKind = "number"
	SetFilter    FilterKind = "set"
)

// Formatter renders a raw cell value.
type Formatter func(value any) string

// Comparator orders two raw cell values: negative when a sorts first.
type Comparator func(a, b any) int

// ValueGetter derives a value from a whole row.
type ValueGetter func(row map[string]any) any

// Definition describes one displayed field. Definitions are values and are
// not mutated after construction.
type Definition struct {
	Field     string
	Label     string
	Kind      Kind
	Filter    FilterKind
	SetValues []string

	Formatter   Formatter
	Comparator  Comparator
	FilterValue ValueGetter
	Tooltip     Formatter

	InitiallyHidden bool
}

// Numeric reports whether the column holds numbers.
func (d Definition) Numeric() bool {
	return d.Kind == Numeric
}

// Format renders value with the column's formatter.
func (d Definition) Format(value any) string {
	if d.Formatter != nil {
		return d.Formatter(value)
	}
	if value == nil {
		return ""
	}
	return plain(value)
}

// Compare orders two values with the column's comparator, or by kind.
func (d Definition) Compare(a, b any) int {
	if d.Comparator != nil {
		return d.Comparator(a, b)
	}
	switch d.Kind {
	case Numeric:
		return CompareNumbers(a, b)
	case Date:
		return CompareDates(a, b)
	default:
		return CompareText(a, b)
	}
}

// FilterValueOf returns the value filters test for row.
func (d Definition) FilterValueOf(row map[string]any) any {
	if d.FilterValue != nil {
		return d.FilterValue(row)
	}
	return row[d.Field]
}

// TooltipOf returns the tooltip for value, or "" when the column has none.
func (d Definition) TooltipOf(value any) string {
	if d.Tooltip == nil {
		return ""
	}
	return d.Tooltip(value)
}

// Fields lists the fields of defs in order.
func Fields(defs []Definition) []string {
	fields := make([]string, len(defs))
	for i, d := range defs {
		fields[i] = d.Field
	}
	return fields
}

// Find returns the definition for field.
func Find(defs []Definition, field string) (Definition, bool) {
	for _, d := range defs {
		if d.Field == field {
			return d, true
		}
	}
	return Definition{}, false
}

// Distinct collects the distinct string forms of field across rows, in
// first-seen order. Set filters without fixed values offer these.
func Distinct[R ~map[string]any](rows []R, field string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range rows {
		v, ok := row[field]
		if !ok || v == nil {
			continue
		}
		s := plain(v)
		if _, dup := seen[s]; dup || strings.TrimSpace(s) == "" {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	return values
}
