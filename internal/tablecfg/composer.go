// Package tablecfg turns column definitions and color-mode configuration
// into grid options, and keeps a table's layout, filters, sort and color
// mode in the view-state store.
package tablecfg

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
	"github.com/alexisbeaulieu97/tradeboard/internal/grid"
	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

// Deps are the collaborators of a Composer.
type Deps struct {
	Store     *viewstate.Store
	Scheduler Scheduler
	Log       *logger.Logger
	// Pagination turns on paging with PageSize rows (grid default when zero).
	Pagination bool
	PageSize   int
}

// TableConfig is the composed column set and row styling.
type TableConfig struct {
	Columns  []grid.Column
	RowStyle grid.RowStyleFunc
}

// Composer owns one mounted table.
type Composer struct {
	tableID string
	data    []map[string]any
	base    []columns.Definition
	colors  *colormode.Config

	store      *viewstate.Store
	scheduler  Scheduler
	log        *logger.Logger
	pagination bool
	pageSize   int

	active string
}

// Compose validates colors against base and restores the table's active
// color mode. A color mode targeting a field that base lacks is an error.
func Compose(data []map[string]any, base []columns.Definition, colors *colormode.Config, tableID string, deps Deps) (*Composer, error) {
	if err := colors.Validate(tableID, columns.Fields(base)); err != nil {
		return nil, err
	}

	if deps.Scheduler == nil {
		deps.Scheduler = Immediate{}
	}
	if deps.Store == nil {
		deps.Store = viewstate.New(nil, deps.Log)
	}
	c := &Composer{
		tableID:    tableID,
		data:       data,
		base:       base,
		colors:     colors,
		store:      deps.Store,
		scheduler:  deps.Scheduler,
		log:        deps.Log.WithFields(map[string]any{"table": tableID}),
		pagination: deps.Pagination,
		pageSize:   deps.PageSize,
		active:     colormode.None,
	}
	c.restoreColorMode()
	return c, nil
}

// TableID returns the id the table persists under.
func (c *Composer) TableID() string { return c.tableID }

// ColorConfig returns the table's color modes, possibly nil.
func (c *Composer) ColorConfig() *colormode.Config { return c.colors }

// ActiveColorMode returns the active mode id or colormode.None.
func (c *Composer) ActiveColorMode() string { return c.active }

// ToggleColorMode applies a header toggle click for modeID and persists the
// result.
func (c *Composer) ToggleColorMode(modeID string) {
	if _, ok := c.colors.Find(modeID); !ok {
		return
	}
	c.active = colormode.Toggle(c.active, modeID)
	_ = c.store.Set(viewstate.ColorModeKey(c.tableID), nil, c.active)
	c.log.Debug("color mode set to " + c.active)
}

// Config returns columns with decorated headers for color-mode targets and
// numeric fields, plus a row-style resolver that reads the active mode at
// call time.
func (c *Composer) Config() TableConfig {
	cols := make([]grid.Column, len(c.base))
	for i, def := range c.base {
		col := grid.Column{Def: def}
		if mode, ok := c.colors.ForField(def.Field); ok {
			col.Header = c.toggleHeader(mode)
		} else if def.Numeric() {
			col.Header = standardHeader
		}
		cols[i] = col
	}

	return TableConfig{
		Columns: cols,
		RowStyle: func(row map[string]any, rowIndex int, palette theme.Name) (lipgloss.Color, bool) {
			return colormode.ResolveRowColor(row, c.active, c.colors, palette, rowIndex)
		},
	}
}

// GridOptions returns the complete widget configuration for palette.
func (c *Composer) GridOptions(palette theme.Name) grid.Options {
	cfg := c.Config()
	return grid.Options{
		Theme:      palette,
		Columns:    cfg.Columns,
		Rows:       c.data,
		RowID:      "id",
		RowStyle:   cfg.RowStyle,
		Pagination: c.pagination,
		PageSize:   c.pageSize,

		OnReady:                      c.OnReady,
		OnSortChanged:                c.OnSortChanged,
		OnFilterChanged:              c.OnFilterChanged,
		OnColumnMoved:                c.OnColumnMoved,
		OnColumnVisibilityChanged:    c.OnColumnVisibilityChanged,
		OnToolPanelVisibilityChanged: c.OnToolPanelVisibilityChanged,
	}
}

// OnReady restores layout, then filters, then sort, and fits the columns.
// Missing or malformed state is skipped.
func (c *Composer) OnReady(api grid.API) {
	var layout []grid.ColumnState
	if c.store.Decode(viewstate.ColumnStateKey(c.tableID), &layout) && len(layout) > 0 {
		if !api.ApplyColumnState(grid.ApplyColumnStateParams{State: layout, ApplyOrder: true}) {
			c.log.Debug("saved column state references unknown columns")
		}
	}

	var filters grid.FilterModel
	if c.store.Decode(viewstate.FilterModelKey(c.tableID), &filters) {
		api.SetFilterModel(filters)
	}

	var sortModel []grid.ColumnState
	if c.store.Decode(viewstate.SortModelKey(c.tableID), &sortModel) {
		api.ApplyColumnState(grid.ApplyColumnStateParams{State: sortModel, ResetSort: true})
	}

	api.SizeColumnsToFit()
}

// OnSortChanged refreshes headers and persists the sorted columns.
func (c *Composer) OnSortChanged(api grid.API) {
	api.RefreshHeader()
	_ = c.store.Set(viewstate.SortModelKey(c.tableID), nil, SortModel(api.GetColumnState()))
}

// OnFilterChanged persists the filter model.
func (c *Composer) OnFilterChanged(api grid.API) {
	_ = c.store.Set(viewstate.FilterModelKey(c.tableID), nil, api.GetFilterModel())
}

// OnColumnMoved re-fits on the next tick and persists the layout.
func (c *Composer) OnColumnMoved(api grid.API) {
	c.scheduler.Defer(func() { c.fitAndSaveLayout(api) })
}

// OnColumnVisibilityChanged re-fits on the next tick and persists the layout.
func (c *Composer) OnColumnVisibilityChanged(api grid.API) {
	c.scheduler.Defer(func() { c.fitAndSaveLayout(api) })
}

// OnToolPanelVisibilityChanged re-fits on the next tick.
func (c *Composer) OnToolPanelVisibilityChanged(api grid.API) {
	c.scheduler.Defer(api.SizeColumnsToFit)
}

// SortModel keeps the sorted entries of state, reduced to their sort fields.
func SortModel(state []grid.ColumnState) []grid.ColumnState {
	model := []grid.ColumnState{}
	for _, st := range state {
		if st.Sort == grid.SortNone {
			continue
		}
		model = append(model, grid.ColumnState{ColID: st.ColID, Sort: st.Sort, SortIndex: st.SortIndex})
	}
	return model
}

func (c *Composer) fitAndSaveLayout(api grid.API) {
	api.SizeColumnsToFit()
	_ = c.store.Set(viewstate.ColumnStateKey(c.tableID), nil, api.GetColumnState())
}

func (c *Composer) restoreColorMode() {
	if c.colors == nil {
		return
	}
	saved, ok := c.store.GetString(viewstate.ColorModeKey(c.tableID))
	if !ok || saved == colormode.None {
		return
	}
	if _, known := c.colors.Find(saved); !known {
		c.log.Warn("ignoring saved color mode " + saved + ": not offered by this table")
		return
	}
	c.active = saved
}

func (c *Composer) toggleHeader(mode colormode.Mode) grid.HeaderComponent {
	return func(p grid.HeaderParams) grid.HeaderView {
		return grid.HeaderView{
			Label:         p.Column.Label,
			SortIndicator: p.Sort.Indicator(),
			FilterTrigger: true,
			Toggle: &grid.ToggleControl{
				Active:  c.active == mode.ID,
				Label:   "Toggle color coding by " + mode.Label,
				OnClick: func() { c.ToggleColorMode(mode.ID) },
			},
		}
	}
}

func standardHeader(p grid.HeaderParams) grid.HeaderView {
	return grid.HeaderView{
		Label:         p.Column.Label,
		SortIndicator: p.Sort.Indicator(),
		FilterTrigger: true,
	}
}
