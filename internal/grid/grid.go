package grid

import (
	"sort"

	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

const (
	minColumnWidth = 4
	defaultWidth   = 120
)

type columnState struct {
	col       Column
	width     int
	hide      bool
	sort      SortDirection
	sortIndex int
}

func (c *columnState) id() string { return c.col.Def.Field }

// Grid is the terminal grid. It is not safe for concurrent use; the host
// drives it from one goroutine.
type Grid struct {
	opts    Options
	cols    []*columnState
	filters FilterModel
	palette theme.Name

	toolPanel bool
	ready     bool
	page      int
	cursor    int
	selected  string

	// bumped on RedrawRows / RefreshHeader so hosts can tell a repaint is due.
	rowsVersion   int
	headerVersion int
}

// New creates a grid from opts. Columns flagged InitiallyHidden start hidden.
func New(opts Options) *Grid {
	if opts.RowID == "" {
		opts.RowID = "id"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Theme == "" {
		opts.Theme = theme.Dark
	}

	g := &Grid{
		opts:    opts,
		filters: FilterModel{},
		palette: opts.Theme,
	}
	for _, col := range opts.Columns {
		g.cols = append(g.cols, &columnState{col: col, hide: col.Def.InitiallyHidden})
	}
	g.SizeColumnsToFit()
	return g
}

// Ready raises OnReady once. Hosts call it after the grid is first shown.
func (g *Grid) Ready() {
	if g.ready {
		return
	}
	g.ready = true
	if g.opts.OnReady != nil {
		g.opts.OnReady(g)
	}
}

// IsReady reports whether Ready has run.
func (g *Grid) IsReady() bool { return g.ready }

// SetTheme switches the palette and repaints rows.
func (g *Grid) SetTheme(name theme.Name) {
	if g.palette == name {
		return
	}
	g.palette = name
	g.RedrawRows()
}

// Theme returns the active palette.
func (g *Grid) Theme() theme.Name { return g.palette }

// SetRows replaces the row data, keeping the selection when its id survives.
func (g *Grid) SetRows(rows []map[string]any) {
	g.opts.Rows = rows
	g.restoreSelection()
	g.RedrawRows()
}

// Resize sets the available width and height and re-fits columns.
func (g *Grid) Resize(width, height int) {
	if width > 0 {
		g.opts.Width = width
	}
	if height > 0 {
		g.opts.Height = height
	}
	g.SizeColumnsToFit()
}

// ApplyColumnState applies width, visibility, sort and optionally order. It
// reports whether every listed column exists.
func (g *Grid) ApplyColumnState(params ApplyColumnStateParams) bool {
	allFound := true
	listed := make(map[string]bool, len(params.State))

	for _, st := range params.State {
		col := g.column(st.ColID)
		if col == nil {
			allFound = false
			continue
		}
		listed[st.ColID] = true
		if st.Width > 0 {
			col.width = st.Width
		}
		if st.Hide != nil {
			col.hide = *st.Hide
		}
		col.sort = st.Sort
		col.sortIndex = len(g.cols)
		if st.SortIndex != nil {
			col.sortIndex = *st.SortIndex
		}
	}

	if params.ResetSort {
		for _, col := range g.cols {
			if !listed[col.id()] {
				col.sort = SortNone
			}
		}
	}

	if params.ApplyOrder {
		ordered := make([]*columnState, 0, len(g.cols))
		for _, st := range params.State {
			if col := g.column(st.ColID); col != nil && !contains(ordered, col) {
				ordered = append(ordered, col)
			}
		}
		for _, col := range g.cols {
			if !listed[col.id()] {
				ordered = append(ordered, col)
			}
		}
		g.cols = ordered
	}

	g.normalizeSortIndexes()
	g.restoreSelection()
	return allFound
}

// SetFilterModel replaces every filter. Unknown columns are ignored.
func (g *Grid) SetFilterModel(model FilterModel) {
	g.filters = FilterModel{}
	for colID, cond := range model {
		if g.column(colID) != nil {
			g.filters[colID] = cond
		}
	}
	g.page = 0
	g.restoreSelection()
}

// GetColumnState returns every column in display order.
func (g *Grid) GetColumnState() []ColumnState {
	out := make([]ColumnState, 0, len(g.cols))
	for _, col := range g.cols {
		hide := col.hide
		st := ColumnState{ColID: col.id(), Width: col.width, Hide: &hide, Sort: col.sort}
		if col.sort != SortNone {
			idx := col.sortIndex
			st.SortIndex = &idx
		}
		out = append(out, st)
	}
	return out
}

// GetFilterModel returns a copy of the active filters.
func (g *Grid) GetFilterModel() FilterModel {
	out := make(FilterModel, len(g.filters))
	for k, v := range g.filters {
		out[k] = v
	}
	return out
}

// SizeColumnsToFit spreads the available width over the visible columns.
func (g *Grid) SizeColumnsToFit() {
	visible := g.VisibleColumns()
	if len(visible) == 0 {
		return
	}

	// One border cell per column plus the closing border.
	available := g.opts.Width - (len(visible) + 1)
	each := available / len(visible)
	extra := available % len(visible)
	if each < minColumnWidth {
		each, extra = minColumnWidth, 0
	}
	for i, col := range visible {
		w := each
		if i < extra {
			w++
		}
		g.column(col.Field).width = w
	}
	g.headerVersion++
}

// RedrawRows marks row styling stale.
func (g *Grid) RedrawRows() { g.rowsVersion++ }

// RefreshHeader marks headers stale.
func (g *Grid) RefreshHeader() { g.headerVersion++ }

// Versions returns the repaint counters for rows and headers.
func (g *Grid) Versions() (rows, header int) { return g.rowsVersion, g.headerVersion }

// ClickHeader handles a click on a header region. The label advances the
// sort; the filter trigger reports true so the host can open its editor;
// the toggle runs the header's toggle control and never sorts.
func (g *Grid) ClickHeader(colID string, region Region) bool {
	col := g.column(colID)
	if col == nil {
		return false
	}

	switch region {
	case RegionToggle:
		view := g.headerView(col)
		if view.Toggle == nil || view.Toggle.OnClick == nil {
			return false
		}
		view.Toggle.OnClick()
		g.RefreshHeader()
		g.RedrawRows()
		return true
	case RegionFilter:
		return true
	default:
		g.progressSort(col)
		return true
	}
}

// SetColumnFilter sets or, with nil, clears the filter of one column and
// raises OnFilterChanged.
func (g *Grid) SetColumnFilter(colID string, cond *FilterCondition) {
	if g.column(colID) == nil {
		return
	}
	if cond == nil {
		delete(g.filters, colID)
	} else {
		g.filters[colID] = *cond
	}
	g.page = 0
	g.restoreSelection()
	g.emit(g.opts.OnFilterChanged)
}

// MoveColumn moves colID by delta positions and raises OnColumnMoved.
func (g *Grid) MoveColumn(colID string, delta int) {
	from := g.index(colID)
	if from < 0 {
		return
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to >= len(g.cols) {
		to = len(g.cols) - 1
	}
	if to == from {
		return
	}
	col := g.cols[from]
	g.cols = append(g.cols[:from], g.cols[from+1:]...)
	g.cols = append(g.cols[:to], append([]*columnState{col}, g.cols[to:]...)...)
	g.emit(g.opts.OnColumnMoved)
}

// SetColumnVisible shows or hides colID and raises OnColumnVisibilityChanged.
func (g *Grid) SetColumnVisible(colID string, visible bool) {
	col := g.column(colID)
	if col == nil || col.hide == !visible {
		return
	}
	col.hide = !visible
	g.emit(g.opts.OnColumnVisibilityChanged)
}

// SetToolPanelVisible opens or closes the column tool panel and raises
// OnToolPanelVisibilityChanged.
func (g *Grid) SetToolPanelVisible(visible bool) {
	if g.toolPanel == visible {
		return
	}
	g.toolPanel = visible
	g.emit(g.opts.OnToolPanelVisibilityChanged)
}

// ToolPanelVisible reports whether the column tool panel is open.
func (g *Grid) ToolPanelVisible() bool { return g.toolPanel }

// Columns returns every column definition in display order, hidden included.
func (g *Grid) Columns() []Column {
	out := make([]Column, len(g.cols))
	for i, col := range g.cols {
		out[i] = col.col
	}
	return out
}

// Hidden reports whether colID is hidden.
func (g *Grid) Hidden(colID string) bool {
	col := g.column(colID)
	return col != nil && col.hide
}

// Sort returns the sort direction of colID.
func (g *Grid) Sort(colID string) SortDirection {
	if col := g.column(colID); col != nil {
		return col.sort
	}
	return SortNone
}

// Width returns the fitted width of colID.
func (g *Grid) Width(colID string) int {
	if col := g.column(colID); col != nil {
		return col.width
	}
	return 0
}

// DisplayedRows returns filtered and sorted rows, without pagination.
func (g *Grid) DisplayedRows() []map[string]any {
	rows := make([]map[string]any, 0, len(g.opts.Rows))
	for _, row := range g.opts.Rows {
		if g.passesFilters(row) {
			rows = append(rows, row)
		}
	}

	sorted := g.sortedColumns()
	if len(sorted) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, col := range sorted {
				c := col.col.Def.Compare(rows[i][col.id()], rows[j][col.id()])
				if c == 0 {
					continue
				}
				if col.sort == SortDesc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	return rows
}

// PageRows returns the rows of the current page and the index of its first row.
func (g *Grid) PageRows() ([]map[string]any, int) {
	rows := g.DisplayedRows()
	if !g.opts.Pagination {
		return rows, 0
	}
	start := g.page * g.opts.PageSize
	if start >= len(rows) {
		start = 0
		g.page = 0
	}
	end := start + g.opts.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], start
}

// PageCount returns the number of pages, at least one.
func (g *Grid) PageCount() int {
	if !g.opts.Pagination {
		return 1
	}
	n := len(g.DisplayedRows())
	pages := (n + g.opts.PageSize - 1) / g.opts.PageSize
	if pages == 0 {
		return 1
	}
	return pages
}

// Page returns the zero-based current page.
func (g *Grid) Page() int { return g.page }

// NextPage and PrevPage move between pages.
func (g *Grid) NextPage() {
	if g.page+1 < g.PageCount() {
		g.page++
		g.cursor = g.page * g.opts.PageSize
		g.selectCursor()
	}
}

func (g *Grid) PrevPage() {
	if g.page > 0 {
		g.page--
		g.cursor = g.page * g.opts.PageSize
		g.selectCursor()
	}
}

// MoveCursor moves the row selection by delta.
func (g *Grid) MoveCursor(delta int) {
	n := len(g.DisplayedRows())
	if n == 0 {
		g.cursor = 0
		g.selected = ""
		return
	}
	g.cursor += delta
	if g.cursor < 0 {
		g.cursor = 0
	}
	if g.cursor >= n {
		g.cursor = n - 1
	}
	if g.opts.Pagination {
		g.page = g.cursor / g.opts.PageSize
	}
	g.selectCursor()
}

// Cursor returns the index of the selected row among the displayed rows.
func (g *Grid) Cursor() int { return g.cursor }

// SelectedRow returns the selected row, if any.
func (g *Grid) SelectedRow() (map[string]any, bool) {
	rows := g.DisplayedRows()
	if g.cursor < 0 || g.cursor >= len(rows) {
		return nil, false
	}
	return rows[g.cursor], true
}

func (g *Grid) progressSort(target *columnState) {
	next := target.sort.Next()
	for _, col := range g.cols {
		col.sort = SortNone
	}
	target.sort = next
	target.sortIndex = 0
	g.normalizeSortIndexes()
	g.restoreSelection()
	g.emit(g.opts.OnSortChanged)
}

func (g *Grid) sortedColumns() []*columnState {
	var sorted []*columnState
	for _, col := range g.cols {
		if col.sort != SortNone {
			sorted = append(sorted, col)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].sortIndex < sorted[j].sortIndex })
	return sorted
}

func (g *Grid) normalizeSortIndexes() {
	for i, col := range g.sortedColumns() {
		col.sortIndex = i
	}
}

func (g *Grid) passesFilters(row map[string]any) bool {
	for colID, cond := range g.filters {
		col := g.column(colID)
		if col == nil {
			continue
		}
		if !cond.Matches(col.col.Def.FilterValueOf(row)) {
			return false
		}
	}
	return true
}

// VisibleColumns returns the definitions of the shown columns in order.
func (g *Grid) VisibleColumns() []columns.Definition {
	var out []columns.Definition
	for _, col := range g.cols {
		if !col.hide {
			out = append(out, col.col.Def)
		}
	}
	return out
}

func (g *Grid) headerView(col *columnState) HeaderView {
	_, filtered := g.filters[col.id()]
	params := HeaderParams{Column: col.col.Def, Sort: col.sort, Filtered: filtered}
	if col.col.Header == nil {
		return HeaderView{Label: col.col.Def.Label}
	}
	return col.col.Header(params)
}

// HeaderView renders the header of colID.
func (g *Grid) HeaderView(colID string) (HeaderView, bool) {
	col := g.column(colID)
	if col == nil {
		return HeaderView{}, false
	}
	return g.headerView(col), true
}

func (g *Grid) selectCursor() {
	rows := g.DisplayedRows()
	if g.cursor >= 0 && g.cursor < len(rows) {
		g.selected = columns.AsString(rows[g.cursor][g.opts.RowID])
	}
}

// restoreSelection moves the cursor to the selected row after a re-sort or
// re-filter, staying in range when the row is gone.
func (g *Grid) restoreSelection() {
	rows := g.DisplayedRows()
	if g.selected != "" {
		for i, row := range rows {
			if columns.AsString(row[g.opts.RowID]) == g.selected {
				g.cursor = i
				if g.opts.Pagination {
					g.page = i / g.opts.PageSize
				}
				return
			}
		}
	}
	if g.cursor >= len(rows) {
		g.cursor = len(rows) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	g.selectCursor()
}

func (g *Grid) emit(handler func(API)) {
	if handler != nil {
		handler(g)
	}
}

func (g *Grid) column(id string) *columnState {
	for _, col := range g.cols {
		if col.id() == id {
			return col
		}
	}
	return nil
}

func (g *Grid) index(id string) int {
	for i, col := range g.cols {
		if col.id() == id {
			return i
		}
	}
	return -1
}

func contains(cols []*columnState, target *columnState) bool {
	for _, c := range cols {
		if c == target {
			return true
		}
	}
	return false
}

var _ API = (*Grid)(nil)
