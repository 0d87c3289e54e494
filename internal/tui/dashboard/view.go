package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/chartstate"
	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
	"github.com/alexisbeaulieu97/tradeboard/internal/nav"
)

// View renders the current state of the model
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())

	if m.showError && m.errorMsg != "" {
		sections = append(sections, errorBannerStyle.Render(m.errorMsg))
	}

	switch m.page {
	case PageOverview:
		sections = append(sections, m.renderOverview())
	case PageCandles:
		sections = append(sections, m.renderCandles())
	default:
		sections = append(sections, m.renderTrades())
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	route := m.page.Route()
	active, _ := nav.Find(route)

	items := []string{titleStyle.Render("Tradeboard")}
	for i, e := range nav.Entries() {
		label := fmt.Sprintf("%d %s", i+1, e.Name)
		if e.ID == active.ID {
			items = append(items, navActiveStyle.Render(label))
			continue
		}
		items = append(items, navItemStyle.Render(label))
	}
	items = append(items, navItemStyle.Render(themeIcon(m.deps.Theme.Name())))
	bar := lipgloss.JoinHorizontal(lipgloss.Top, items...)

	crumbs := nav.Breadcrumb(route)
	labels := make([]string, len(crumbs))
	for i, c := range crumbs {
		labels[i] = c.Label
	}
	trail := breadcrumbStyle.Render(strings.Join(labels, " / ") + " · " + nav.ActiveTitle(route))

	return headerStyle.Width(m.width).Render(bar + "\n" + trail)
}

func (m Model) renderTrades() string {
	tv := m.activeTable()
	if tv == nil {
		return emptyStateStyle.Render("No trades to show")
	}

	body := tv.grid.View(tv.focusedField())
	if m.panelOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, tv.grid.ToolPanelView(tv.panelFocus))
	}
	if m.filtering {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.filter.View())
	}
	return body
}

func (m Model) renderOverview() string {
	ids := m.overview.Tables()
	if len(ids) == 0 {
		return emptyStateStyle.Render("No tables registered")
	}

	if id, ok := m.overview.Expanded(); ok {
		return m.renderPanel(id, true)
	}

	var cells []string
	for i, id := range ids {
		cells = append(cells, m.renderPanel(id, i == m.overviewFocus))
	}

	var rows []string
	for i := 0; i < len(cells); i += 2 {
		end := i + 2
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderPanel draws one overview table with its title and active color mode.
func (m Model) renderPanel(id string, focused bool) string {
	tv := m.tables[id]
	style := tableTitleStyle
	if focused {
		style = tableTitleFocusedStyle
	}

	title := style.Render(tv.spec.Title)
	if active := tv.composer.ActiveColorMode(); active != colormode.None {
		if mode, ok := tv.composer.ColorConfig().Find(active); ok {
			title += " " + colorModeStyle.Render("colored by "+mode.Label)
		}
	}

	focus := ""
	if focused {
		focus = tv.focusedField()
	}
	body := tv.grid.View(focus)
	if focused && m.panelOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, tv.grid.ToolPanelView(tv.panelFocus))
	}
	if focused && m.filtering {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.filter.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m Model) renderCandles() string {
	var symbols []string
	for _, s := range chartstate.Symbols {
		label := s.Label
		if s.ID == m.symbol.ID {
			symbols = append(symbols, navActiveStyle.Render(label))
			continue
		}
		symbols = append(symbols, navItemStyle.Render(label))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, symbols...)

	if m.chartLoading {
		return lipgloss.JoinVertical(lipgloss.Left, line,
			emptyStateStyle.Render(fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.symbol.Name)))
	}
	if m.chart == nil || len(m.chart.Visible()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, line, emptyStateStyle.Render("No price data"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.chart.View())
}

func (m Model) renderFooter() string {
	return footerStyle.Width(m.width).Render(m.help.View(m.keys.forPage(m.page)))
}
