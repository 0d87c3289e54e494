// Package grid is a terminal data grid driven by declarative options. It
// sorts, filters, reorders and hides columns, paints per-row backgrounds and
// reports user interactions through callbacks that receive its API.
package grid

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

// SortDirection is a column's sort state. The zero value means unsorted.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Next advances none → asc → desc → none.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

// Indicator renders the direction as a header glyph.
func (d SortDirection) Indicator() string {
	switch d {
	case SortAsc:
		return "▲"
	case SortDesc:
		return "▼"
	default:
		return ""
	}
}

// ColumnState is the persisted layout of one column. Nil pointers and a zero
// width leave the column unchanged when applied.
type ColumnState struct {
	ColID     string        `json:"colId"`
	Width     int           `json:"width,omitempty"`
	Hide      *bool         `json:"hide,omitempty"`
	Sort      SortDirection `json:"sort,omitempty"`
	SortIndex *int          `json:"sortIndex,omitempty"`
}

// ApplyColumnStateParams controls ApplyColumnState.
type ApplyColumnStateParams struct {
	State []ColumnState
	// ApplyOrder moves the listed columns to the front in the listed order.
	ApplyOrder bool
	// ResetSort clears the sort of every column not listed in State.
	ResetSort bool
}

// Filter kinds and operators understood by the grid.
const (
	FilterText   = "text"
	FilterNumber = "number"
	FilterSet    = "set"

	OpContains     = "contains"
	OpNotContains  = "notContains"
	OpEquals       = "equals"
	OpNotEqual     = "notEqual"
	OpStartsWith   = "startsWith"
	OpEndsWith     = "endsWith"
	OpLessThan     = "lessThan"
	OpLessEqual    = "lessThanOrEqual"
	OpGreaterThan  = "greaterThan"
	OpGreaterEqual = "greaterThanOrEqual"
	OpInRange      = "inRange"
	OpBlank        = "blank"
	OpNotBlank     = "notBlank"
)

// FilterCondition is the filter applied to one column.
type FilterCondition struct {
	FilterType string   `json:"filterType"`
	Type       string   `json:"type,omitempty"`
	Filter     any      `json:"filter,omitempty"`
	FilterTo   any      `json:"filterTo,omitempty"`
	Values     []string `json:"values,omitempty"`
}

// FilterModel maps column ids to their filter.
type FilterModel map[string]FilterCondition

// Region is a clickable area of a column header.
type Region int

const (
	RegionLabel Region = iota
	RegionFilter
	RegionToggle
)

// HeaderParams is what a header component is rendered from.
type HeaderParams struct {
	Column   columns.Definition
	Sort     SortDirection
	Filtered bool
}

// ToggleControl is an on/off control embedded in a header.
type ToggleControl struct {
	Active  bool
	Label   string
	OnClick func()
}

// HeaderView is the rendered state of a decorated header.
type HeaderView struct {
	Label         string
	SortIndicator string
	FilterTrigger bool
	Toggle        *ToggleControl
}

// HeaderComponent renders a decorated header.
type HeaderComponent func(HeaderParams) HeaderView

// Column pairs a definition with an optional header component.
type Column struct {
	Def    columns.Definition
	Header HeaderComponent
}

// RowStyleFunc returns the background for a row.
type RowStyleFunc func(row map[string]any, rowIndex int, palette theme.Name) (lipgloss.Color, bool)

// DefaultPageSize is used when pagination is on and no size is given.
const DefaultPageSize = 50

// Options configure a Grid.
type Options struct {
	Theme   theme.Name
	Columns []Column
	Rows    []map[string]any
	// RowID names the field that identifies a row. Defaults to "id".
	RowID      string
	RowStyle   RowStyleFunc
	Pagination bool
	PageSize   int
	Width      int
	Height     int

	OnReady                      func(API)
	OnSortChanged                func(API)
	OnFilterChanged              func(API)
	OnColumnMoved                func(API)
	OnColumnVisibilityChanged    func(API)
	OnToolPanelVisibilityChanged func(API)
}

// API is the imperative surface handed to callbacks. Calls through the API
// never raise callbacks themselves.
type API interface {
	ApplyColumnState(params ApplyColumnStateParams) bool
	SetFilterModel(model FilterModel)
	GetColumnState() []ColumnState
	GetFilterModel() FilterModel
	SizeColumnsToFit()
	RedrawRows()
	RefreshHeader()
}
