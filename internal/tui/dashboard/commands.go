package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// chartLoadDelay keeps the loading indicator up while a chart is prepared.
const chartLoadDelay = 500 * time.Millisecond

func readyCmd() tea.Cmd {
	return func() tea.Msg { return readyMsg{} }
}

// drainCmd defers queued table work to the next update cycle.
func drainCmd() tea.Cmd {
	return func() tea.Msg { return drainMsg{} }
}

func loadChartCmd(symbol string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return chartLoadedMsg{Symbol: symbol} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return chartLoadedMsg{Symbol: symbol}
	})
}
