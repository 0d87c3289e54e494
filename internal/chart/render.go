package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/alexisbeaulieu97/tradeboard/internal/chartstate"
	"github.com/alexisbeaulieu97/tradeboard/internal/dataset"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

const axisWidth = 10

type palette struct {
	up, down, axis, active, muted lipgloss.Color
}

var palettes = map[theme.Name]palette{
	theme.Light: {up: "#15803d", down: "#b91c1c", axis: "#475569", active: "#1d4ed8", muted: "#94a3b8"},
	theme.Dark:  {up: "#4ade80", down: "#f87171", axis: "#94a3b8", active: "#60a5fa", muted: "#475569"},
}

// View renders the title bar, the plot with a price axis, and the date axis.
func (m *Model) View() string {
	p, ok := palettes[m.palette]
	if !ok {
		p = palettes[theme.Dark]
	}

	var b strings.Builder
	b.WriteString(m.header(p))
	b.WriteByte('\n')

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.muted).Render("no price data"))
		return b.String()
	}

	plotWidth := m.width - axisWidth - 1
	plotHeight := m.height - 3
	if plotWidth < 1 || plotHeight < 2 {
		return b.String()
	}

	bars := bucket(visible, plotWidth)
	lo, hi := bounds(bars)
	rowOf := func(price float64) int {
		if hi == lo {
			return plotHeight / 2
		}
		return int(math.Round((hi - price) / (hi - lo) * float64(plotHeight-1)))
	}

	axis := lipgloss.NewStyle().Foreground(p.axis)
	up := lipgloss.NewStyle().Foreground(p.up)
	down := lipgloss.NewStyle().Foreground(p.down)

	for y := 0; y < plotHeight; y++ {
		label := ""
		switch y {
		case 0:
			label = humanize.CommafWithDigits(hi, 2)
		case plotHeight / 2:
			label = humanize.CommafWithDigits((hi+lo)/2, 2)
		case plotHeight - 1:
			label = humanize.CommafWithDigits(lo, 2)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s ", axisWidth, label)))

		for x, bar := range bars {
			style := up
			if bar.Close < bar.Open {
				style = down
			}
			var prev *dataset.Candle
			if x > 0 {
				prev = &bars[x-1]
			}
			cell := m.cell(bar, prev, y, rowOf)
			if cell == " " {
				b.WriteString(cell)
				continue
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteByte('\n')
	}

	first := visible[0].At().Format("Jan 2, 2006")
	last := visible[len(visible)-1].At().Format("Jan 2, 2006")
	gap := plotWidth - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(axis.Render(strings.Repeat(" ", axisWidth+1) + first + strings.Repeat(" ", gap) + last))
	return b.String()
}

func (m *Model) header(p palette) string {
	title := lipgloss.NewStyle().Bold(true).Render(m.title)
	kind := lipgloss.NewStyle().Foreground(p.axis).Render(string(m.kind))

	buttons := make([]string, len(RangeButtons))
	for i, rb := range RangeButtons {
		style := lipgloss.NewStyle().Foreground(p.muted)
		if rb.Label == m.button {
			style = lipgloss.NewStyle().Foreground(p.active).Bold(true).Underline(true)
		}
		buttons[i] = style.Render(rb.Label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", kind, "  ", strings.Join(buttons, " "))
}

func (m *Model) cell(bar dataset.Candle, prev *dataset.Candle, y int, rowOf func(float64) int) string {
	high, low := rowOf(bar.High), rowOf(bar.Low)
	open, closing := rowOf(bar.Open), rowOf(bar.Close)

	switch m.kind {
	case chartstate.Line:
		if y == closing {
			return "•"
		}
		if prev != nil {
			from := rowOf(prev.Close)
			if (y > from && y < closing) || (y < from && y > closing) {
				return "│"
			}
		}
		return " "
	case chartstate.OHLC:
		switch {
		case y == open && y == closing:
			return "┼"
		case y == open:
			return "┤"
		case y == closing:
			return "├"
		case y >= high && y <= low:
			return "│"
		}
		return " "
	default:
		top, bottom := open, closing
		if top > bottom {
			top, bottom = bottom, top
		}
		switch {
		case y >= top && y <= bottom:
			return "┃"
		case y >= high && y <= low:
			return "│"
		}
		return " "
	}
}

// bucket merges bars so that at most width remain.
func bucket(bars []dataset.Candle, width int) []dataset.Candle {
	if len(bars) <= width {
		return bars
	}
	out := make([]dataset.Candle, 0, width)
	for i := 0; i < width; i++ {
		from := i * len(bars) / width
		to := (i + 1) * len(bars) / width
		if to <= from {
			continue
		}
		merged := bars[from]
		for _, c := range bars[from+1 : to] {
			merged.High = math.Max(merged.High, c.High)
			merged.Low = math.Min(merged.Low, c.Low)
			merged.Close = c.Close
			merged.Time = c.Time
		}
		out = append(out, merged)
	}
	return out
}

func bounds(bars []dataset.Candle) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range bars {
		lo = math.Min(lo, c.Low)
		hi = math.Max(hi, c.High)
	}
	return lo, hi
}
