package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tradeboard/internal/chart"
	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
	"github.com/alexisbeaulieu97/tradeboard/internal/grid"
)

// Update handles incoming messages and updates the model. Work that table
// callbacks defer is drained on the following update cycle.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if m.queue.Len() > 0 {
		cmd = tea.Batch(cmd, drainCmd())
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case readyMsg:
		m.markReady()
		return m, nil

	case drainMsg:
		if n := m.queue.Drain(); n > 0 {
			m.log.Debug("ran deferred table work")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	// Spinner tick for loading animations
	case spinner.TickMsg:
		if !m.chartLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case chartLoadedMsg:
		if msg.Symbol == m.symbol.ID {
			m.chartLoading = false
		}
		return m, nil

	// Error messages
	case ErrorMsg:
		m.showError = true
		m.errorMsg = msg.Message
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKeyPress routes keys: filter input first, then global keys, then the
// active page.
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		switch {
		case m.panelOpen:
			m.setPanel(false)
		case m.showError:
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.deps.Theme.ShortcutToggle()
		m.applyTheme()
		return m, nil

	case key.Matches(msg, m.keys.System):
		m.deps.Theme.FollowSystem()
		m.applyTheme()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		return m.showPage(pages[(int(m.page)+1)%len(pages)])

	case key.Matches(msg, m.keys.Trades):
		return m.showPage(PageTrades)

	case key.Matches(msg, m.keys.Overview):
		return m.showPage(PageOverview)

	case key.Matches(msg, m.keys.Candles):
		return m.showPage(PageCandles)
	}

	switch m.page {
	case PageCandles:
		return m.handleChartKeys(msg)
	case PageOverview:
		if handled, next, cmd := m.handleOverviewKeys(msg); handled {
			return next, cmd
		}
	}
	return m.handleTableKeys(msg)
}

func (m Model) showPage(page Page) (Model, tea.Cmd) {
	if page == m.page {
		return m, nil
	}
	m.setPanel(false)
	m.page = page
	m.resize()
	m.markReady()
	if page == PageCandles && m.chartLoading {
		return m, m.spinner.Tick
	}
	return m, nil
}

// handleOverviewKeys handles table focus and expansion on the overview page.
func (m Model) handleOverviewKeys(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	ids := m.overview.Tables()
	if len(ids) == 0 {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Expand):
		if m.overviewFocus >= len(ids) {
			m.overviewFocus = 0
		}
		id := ids[m.overviewFocus]
		if current, ok := m.overview.Expanded(); ok {
			id = current
		}
		m.overview.Toggle(id)
		m.setPanel(false)
		m.resize()
		m.markReady()
		return true, m, nil

	case key.Matches(msg, m.keys.NextTable), key.Matches(msg, m.keys.PrevTable):
		if _, expanded := m.overview.Expanded(); expanded {
			return true, m, nil
		}
		delta := 1
		if key.Matches(msg, m.keys.PrevTable) {
			delta = -1
		}
		m.setPanel(false)
		m.overviewFocus = ((m.overviewFocus+delta)%len(ids) + len(ids)) % len(ids)
		return true, m, nil
	}
	return false, m, nil
}

// handleTableKeys drives the active table's grid.
func (m Model) handleTableKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	tv := m.activeTable()
	if tv == nil {
		return m, nil
	}
	g := tv.grid

	if m.panelOpen {
		return m.handlePanelKeys(msg, tv)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		g.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		g.MoveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		g.PrevPage()
	case key.Matches(msg, m.keys.PageDown):
		g.NextPage()
	case key.Matches(msg, m.keys.Left):
		if tv.focus > 0 {
			tv.focus--
		}
	case key.Matches(msg, m.keys.Right):
		if tv.focus < len(g.VisibleColumns())-1 {
			tv.focus++
		}
	case key.Matches(msg, m.keys.Sort):
		g.ClickHeader(tv.focusedField(), grid.RegionLabel)
	case key.Matches(msg, m.keys.ColorMode):
		if !g.ClickHeader(tv.focusedField(), grid.RegionToggle) {
			return m, nil
		}
	case key.Matches(msg, m.keys.Filter):
		field := tv.focusedField()
		if field == "" || !g.ClickHeader(field, grid.RegionFilter) {
			return m, nil
		}
		m.filtering = true
		m.filter.SetValue("")
		m.filter.Placeholder = filterHint(g, field)
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Unfilter):
		g.SetColumnFilter(tv.focusedField(), nil)
	case key.Matches(msg, m.keys.MoveLeft):
		g.MoveColumn(tv.focusedField(), -1)
		if tv.focus > 0 {
			tv.focus--
		}
	case key.Matches(msg, m.keys.MoveRight):
		g.MoveColumn(tv.focusedField(), 1)
		if tv.focus < len(g.VisibleColumns())-1 {
			tv.focus++
		}
	case key.Matches(msg, m.keys.Columns):
		m.setPanel(true)
	}
	return m, nil
}

// handlePanelKeys drives the column tool panel.
func (m Model) handlePanelKeys(msg tea.KeyMsg, tv *tableView) (Model, tea.Cmd) {
	cols := tv.grid.Columns()
	switch {
	case key.Matches(msg, m.keys.Up):
		if tv.panelFocus > 0 {
			tv.panelFocus--
		}
	case key.Matches(msg, m.keys.Down):
		if tv.panelFocus < len(cols)-1 {
			tv.panelFocus++
		}
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Sort):
		if tv.panelFocus < len(cols) {
			field := cols[tv.panelFocus].Def.Field
			tv.grid.SetColumnVisible(field, tv.grid.Hidden(field))
		}
	case key.Matches(msg, m.keys.Columns):
		m.setPanel(false)
	}
	return m, nil
}

// handleFilterKeys edits the filter of the focused column.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		if tv := m.activeTable(); tv != nil {
			field := tv.focusedField()
			for _, def := range tv.grid.VisibleColumns() {
				if def.Field == field {
					tv.grid.SetColumnFilter(field, grid.ParseFilter(def, m.filter.Value()))
				}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// handleChartKeys drives the chart page.
func (m Model) handleChartKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextSym):
		return m, m.shiftSymbol(1)
	case key.Matches(msg, m.keys.PrevSym):
		return m, m.shiftSymbol(-1)
	}

	if m.chart == nil || m.chartLoading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Kind):
		m.chart.CycleKind()
	case key.Matches(msg, m.keys.ZoomIn):
		m.chart.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.chart.ZoomOut()
	case key.Matches(msg, m.keys.Left):
		m.chart.Pan(-panStep(m.chart))
	case key.Matches(msg, m.keys.Right):
		m.chart.Pan(panStep(m.chart))
	case key.Matches(msg, m.keys.Range):
		m.chart.SelectRange(nextRange(m.chart.ActiveButton()))
	}
	return m, nil
}

func (m *Model) setPanel(open bool) {
	if m.panelOpen == open {
		return
	}
	m.panelOpen = open
	if tv := m.activeTable(); tv != nil {
		tv.grid.SetToolPanelVisible(open)
	}
	m.resize()
}

// panStep moves a tenth of the visible window, at least one bar.
func panStep(c *chart.Model) int {
	start, end := c.Window()
	step := (end - start) / 10
	if step < 1 {
		step = 1
	}
	return step
}

// nextRange returns the range button after label, wrapping around.
func nextRange(label string) string {
	for i, b := range chart.RangeButtons {
		if b.Label == label {
			return chart.RangeButtons[(i+1)%len(chart.RangeButtons)].Label
		}
	}
	return chart.RangeButtons[0].Label
}

func filterHint(g *grid.Grid, field string) string {
	for _, def := range g.VisibleColumns() {
		if def.Field != field {
			continue
		}
		switch def.Filter {
		case columns.SetFilter:
			return "values, comma separated"
		case columns.NumberFilter:
			return "> 100, <= 5, 10..20, blank"
		default:
			return "text, =exact, ^prefix, $suffix, !exclude"
		}
	}
	return ""
}
