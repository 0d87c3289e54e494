package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

type palette struct {
	text   lipgloss.Color
	header lipgloss.Color
	border lipgloss.Color
	accent lipgloss.Color
}

var palettes = map[theme.Name]palette{
	theme.Light: {text: "#0f172a", header: "#334155", border: "#94a3b8", accent: "#2563eb"},
	theme.Dark:  {text: "#e2e8f0", header: "#cbd5e1", border: "#475569", accent: "#60a5fa"},
}

// HeaderLabel renders a header view as one line of text.
func HeaderLabel(view HeaderView) string {
	var b strings.Builder
	b.WriteString(view.Label)
	if view.SortIndicator != "" {
		b.WriteString(" " + view.SortIndicator)
	}
	if view.FilterTrigger {
		b.WriteString(" ≡")
	}
	if view.Toggle != nil {
		if view.Toggle.Active {
			b.WriteString(" ●")
		} else {
			b.WriteString(" ○")
		}
	}
	return b.String()
}

// View renders the current page. focusCol, when not empty, highlights that
// column's header.
func (g *Grid) View(focusCol string) string {
	pal, ok := palettes[g.palette]
	if !ok {
		pal = palettes[theme.Dark]
	}

	var (
		visible []*columnState
		headers []string
	)
	for _, col := range g.cols {
		if col.hide {
			continue
		}
		visible = append(visible, col)
		label := HeaderLabel(g.headerView(col))
		if _, filtered := g.filters[col.id()]; filtered && col.col.Header == nil {
			label += " *"
		}
		headers = append(headers, truncate(label, col.width-2))
	}
	if len(visible) == 0 {
		return lipgloss.NewStyle().Foreground(pal.header).Render("All columns are hidden. Press c to choose columns.")
	}

	pageRows, offset := g.PageRows()
	rows := g.windowRows(pageRows, offset)

	cells := make([][]string, len(rows))
	backgrounds := make([]lipgloss.Color, len(rows))
	hasBackground := make([]bool, len(rows))
	cursorRow := -1
	for i, r := range rows {
		for _, col := range visible {
			text := col.col.Def.Format(r.data[col.id()])
			cells[i] = append(cells[i], truncate(text, col.width-2))
		}
		if g.opts.RowStyle != nil {
			backgrounds[i], hasBackground[i] = g.opts.RowStyle(r.data, r.index, g.palette)
		}
		if r.index == g.cursor {
			cursorRow = i
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(pal.header)
	focusStyle := headerStyle.Foreground(pal.accent).Underline(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(pal.text)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(pal.border)).
		BorderRow(false).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			if row == table.HeaderRow {
				style = headerStyle
				if col >= 0 && col < len(visible) && visible[col].id() == focusCol {
					style = focusStyle
				}
			} else {
				style = cellStyle
				if row >= 0 && row < len(rows) {
					if hasBackground[row] {
						style = style.Background(backgrounds[row])
					}
					if row == cursorRow {
						style = style.Bold(true).Reverse(true)
					}
				}
			}
			if col >= 0 && col < len(visible) {
				style = style.Width(visible[col].width)
				if visible[col].col.Def.Numeric() {
					style = style.Align(lipgloss.Right)
				}
			}
			return style
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(pal.header).Render(g.footer()))
	return b.String()
}

type indexedRow struct {
	data  map[string]any
	index int
}

// windowRows keeps the cursor on screen when the grid has a fixed height.
func (g *Grid) windowRows(rows []map[string]any, offset int) []indexedRow {
	out := make([]indexedRow, len(rows))
	for i, r := range rows {
		out[i] = indexedRow{data: r, index: offset + i}
	}

	// Header, its separator and the two outer borders plus the footer.
	capacity := g.opts.Height - 5
	if g.opts.Height <= 0 || capacity <= 0 || len(out) <= capacity {
		return out
	}

	local := g.cursor - offset
	start := 0
	if local >= capacity {
		start = local - capacity + 1
	}
	end := start + capacity
	if end > len(out) {
		end = len(out)
	}
	return out[start:end]
}

func (g *Grid) footer() string {
	shown := len(g.DisplayedRows())
	parts := []string{fmt.Sprintf("%d of %d rows", shown, len(g.opts.Rows))}
	if g.opts.Pagination {
		parts = append(parts, fmt.Sprintf("page %d/%d", g.page+1, g.PageCount()))
	}
	if n := len(g.filters); n > 0 {
		parts = append(parts, fmt.Sprintf("%d filter(s)", n))
	}
	return strings.Join(parts, " · ")
}

// ToolPanelView lists every column with its visibility.
func (g *Grid) ToolPanelView(focus int) string {
	pal, ok := palettes[g.palette]
	if !ok {
		pal = palettes[theme.Dark]
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(pal.header).Render("Columns"))
	b.WriteString("\n")
	for i, col := range g.cols {
		mark := "[x]"
		if col.hide {
			mark = "[ ]"
		}
		line := fmt.Sprintf("%s %s", mark, col.col.Def.Label)
		style := lipgloss.NewStyle().Foreground(pal.text)
		if i == focus {
			style = style.Foreground(pal.accent).Bold(true)
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.border).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
