package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding of the dashboard.
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextPage  key.Binding
	Trades    key.Binding
	Overview  key.Binding
	Candles   key.Binding
	Theme     key.Binding
	System    key.Binding
	Dismiss   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Sort      key.Binding
	ColorMode key.Binding
	Filter    key.Binding
	Unfilter  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Columns   key.Binding
	Toggle    key.Binding
	Expand    key.Binding
	NextTable key.Binding
	PrevTable key.Binding
	NextSym   key.Binding
	PrevSym   key.Binding
	Kind      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Range     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextPage:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		Trades:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "trades")),
		Overview:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "overview")),
		Candles:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "charts")),
		Theme:     key.NewBinding(key.WithKeys("t", "ctrl+t"), key.WithHelp("t", "light/dark")),
		System:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "follow terminal theme")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
		Sort:      key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "sort")),
		ColorMode: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color rows")),
		Filter:    key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter")),
		Unfilter:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filter")),
		MoveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move column left")),
		MoveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move column right")),
		Columns:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "columns")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "show/hide")),
		Expand:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand")),
		NextTable: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next table")),
		PrevTable: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev table")),
		NextSym:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next symbol")),
		PrevSym:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev symbol")),
		Kind:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "chart type")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Range:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "range")),
	}
}

// pageHelp adapts the bindings of one page to help.KeyMap.
type pageHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (p pageHelp) ShortHelp() []key.Binding  { return p.short }
func (p pageHelp) FullHelp() [][]key.Binding { return p.full }

func (k keyMap) forPage(page Page) pageHelp {
	global := []key.Binding{k.NextPage, k.Theme, k.System, k.Help, k.Quit}
	table := []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown}
	edit := []key.Binding{k.Sort, k.ColorMode, k.Filter, k.Unfilter, k.MoveLeft, k.MoveRight, k.Columns}

	switch page {
	case PageOverview:
		return pageHelp{
			short: []key.Binding{k.Expand, k.NextTable, k.Sort, k.ColorMode, k.Filter, k.Help, k.Quit},
			full:  [][]key.Binding{{k.Expand, k.NextTable, k.PrevTable}, table, edit, global},
		}
	case PageCandles:
		chart := []key.Binding{k.NextSym, k.PrevSym, k.Kind, k.ZoomIn, k.ZoomOut, k.Left, k.Right, k.Range}
		return pageHelp{
			short: []key.Binding{k.NextSym, k.Kind, k.ZoomIn, k.ZoomOut, k.Range, k.Help, k.Quit},
			full:  [][]key.Binding{chart, global},
		}
	default:
		return pageHelp{
			short: []key.Binding{k.Sort, k.ColorMode, k.Filter, k.Columns, k.Help, k.Quit},
			full:  [][]key.Binding{table, edit, global},
		}
	}
}
