package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tradeboard/internal/chartstate"
	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
	"github.com/alexisbeaulieu97/tradeboard/internal/grid"
	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
	"github.com/alexisbeaulieu97/tradeboard/internal/tablecfg"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

type manualTimer struct{ stopped bool }

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualClock holds chart writes until Flush.
type manualClock struct {
	timers []*manualTimer
	fns    []func()
}

func (c *manualClock) AfterFunc(_ time.Duration, fn func()) chartstate.Timer {
	t := &manualTimer{}
	c.timers = append(c.timers, t)
	c.fns = append(c.fns, fn)
	return t
}

func (c *manualClock) Flush() {
	for i, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			c.fns[i]()
		}
	}
}

type fixture struct {
	store *viewstate.Store
	clock *manualClock
}

func newModel(t *testing.T, backend storage.Storage, notice string) (Model, fixture) {
	t.Helper()
	store := viewstate.New(backend, logger.Nop())
	clock := &manualClock{}
	m, err := NewModel(Deps{
		Store:        store,
		Theme:        theme.New(store, func() bool { return true }),
		Log:          logger.Nop(),
		Notice:       notice,
		ChartOptions: []chartstate.Option{chartstate.WithAfterFunc(clock.AfterFunc)},
	})
	require.NoError(t, err)

	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})
	m = send(t, m, readyMsg{})
	return m, fixture{store: store, clock: clock}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(t, m, msg)
	}
	return m
}

func TestNewModelMountsEveryTable(t *testing.T) {
	m, _ := newModel(t, storage.NewMemory(0), "")

	assert.Equal(t, PageTrades, m.Page())
	for _, spec := range tablecfg.Builtins() {
		_, ok := m.Table(spec.ID)
		assert.True(t, ok, spec.ID)
	}

	trades, _ := m.Table(tablecfg.Trades)
	assert.True(t, trades.IsReady())
	credit, _ := m.Table(tablecfg.Credit)
	assert.False(t, credit.IsReady(), "overview tables mount when shown")

	m = press(t, m, "2")
	assert.Equal(t, PageOverview, m.Page())
	assert.True(t, credit.IsReady())
}

func TestNewModelRejectsDanglingColorMode(t *testing.T) {
	specs := tablecfg.WithExtraModes(tablecfg.Builtins(), map[string][]colormode.Mode{
		tablecfg.Risk: {{ID: "bad", Label: "Bad", Field: "nope"}},
	})
	_, err := NewModel(Deps{Specs: specs, Theme: theme.New(viewstate.New(nil, nil), func() bool { return false })})
	assert.Error(t, err)
}

func TestSortKeyPersistsSortModel(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")

	m = press(t, m, "s", "s")
	trades, _ := m.Table(tablecfg.Trades)
	assert.Equal(t, grid.SortDesc, trades.Sort("id"))

	var model []grid.ColumnState
	require.True(t, fx.store.Decode(viewstate.SortModelKey(tablecfg.Trades), &model))
	require.Len(t, model, 1)
	assert.Equal(t, "id", model[0].ColID)
}

func TestColorModeKeyTogglesFocusedColumn(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")

	// status is the second column.
	m = press(t, m, "l", "c")
	composer, _ := m.Composer(tablecfg.Trades)
	assert.Equal(t, "status", composer.ActiveColorMode())
	saved, ok := fx.store.GetString(viewstate.ColorModeKey(tablecfg.Trades))
	require.True(t, ok)
	assert.Equal(t, "status", saved)

	m = press(t, m, "c")
	assert.Equal(t, colormode.None, composer.ActiveColorMode())

	// The id column offers no color mode.
	m = press(t, m, "h", "c")
	assert.Equal(t, colormode.None, composer.ActiveColorMode())
}

func TestColumnMoveIsSavedAfterDrain(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(">")})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Nil(t, fx.store.Get(viewstate.ColumnStateKey(tablecfg.Trades)))

	m = send(t, m, drainMsg{})
	var layout []grid.ColumnState
	require.True(t, fx.store.Decode(viewstate.ColumnStateKey(tablecfg.Trades), &layout))
	assert.Equal(t, "status", layout[0].ColID)
	assert.Equal(t, "id", layout[1].ColID)
}

func TestFilterInput(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")

	m = press(t, m, "l", "f")
	require.True(t, m.filtering)
	m = press(t, m, "F", "I", "L", "L", "E", "D", "enter")
	assert.False(t, m.filtering)

	var filters grid.FilterModel
	require.True(t, fx.store.Decode(viewstate.FilterModelKey(tablecfg.Trades), &filters))
	assert.Equal(t, []string{"FILLED"}, filters["status"].Values)

	trades, _ := m.Table(tablecfg.Trades)
	for _, row := range trades.DisplayedRows() {
		assert.Equal(t, "FILLED", row["status"])
	}

	m = press(t, m, "x")
	assert.Empty(t, trades.GetFilterModel())

	// Escape cancels without touching the filter.
	m = press(t, m, "f", "B", "esc")
	assert.False(t, m.filtering)
	assert.Empty(t, trades.GetFilterModel())
}

func TestToolPanelHidesColumn(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")

	m = press(t, m, "v")
	trades, _ := m.Table(tablecfg.Trades)
	assert.True(t, trades.ToolPanelVisible())

	m = press(t, m, "j", " ")
	assert.True(t, trades.Hidden("status"))
	m = send(t, m, drainMsg{})
	assert.NotNil(t, fx.store.Get(viewstate.ColumnStateKey(tablecfg.Trades)))

	m = press(t, m, "esc")
	assert.False(t, trades.ToolPanelVisible())
}

func TestOverviewExpandCollapse(t *testing.T) {
	m, _ := newModel(t, storage.NewMemory(0), "")
	m = press(t, m, "2")

	_, expanded := m.Expanded()
	assert.False(t, expanded)

	m = press(t, m, "]", "e")
	id, expanded := m.Expanded()
	require.True(t, expanded)
	assert.Equal(t, tablecfg.Holdings, id)

	// Table switching is disabled while a table is expanded.
	m = press(t, m, "]")
	id, _ = m.Expanded()
	assert.Equal(t, tablecfg.Holdings, id)

	m = press(t, m, "e")
	_, expanded = m.Expanded()
	assert.False(t, expanded)
}

func TestChartInteractionsPersistAfterQuietPeriod(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")
	m = press(t, m, "3")
	require.Equal(t, PageCandles, m.Page())
	assert.Equal(t, chartstate.DefaultSymbol, m.Symbol().ID)

	// Keys are ignored while the chart loads.
	m = press(t, m, "m")
	assert.Equal(t, chartstate.Candlestick, m.Chart().Kind())

	m = send(t, m, chartLoadedMsg{Symbol: "AAPL"})
	m = press(t, m, "m", "m")
	assert.Equal(t, chartstate.Line, m.Chart().Kind())
	assert.Nil(t, fx.store.Get(viewstate.ChartStateKey("AAPL")))

	fx.clock.Flush()
	var state chartstate.ViewState
	require.True(t, fx.store.Decode(viewstate.ChartStateKey("AAPL"), &state))
	assert.Equal(t, chartstate.Line, state.ChartKind)
	assert.Nil(t, state.DateRange)
}

func TestSymbolSwitchRestoresSavedState(t *testing.T) {
	backend := storage.NewMemory(0)
	seed := viewstate.New(backend, logger.Nop())
	require.NoError(t, seed.Set(viewstate.ChartStateKey("MSFT"), nil, chartstate.ViewState{ChartKind: chartstate.OHLC}))

	m, fx := newModel(t, backend, "")
	m = press(t, m, "3", "n")
	assert.Equal(t, "MSFT", m.Symbol().ID)
	assert.Equal(t, chartstate.OHLC, m.Chart().Kind())

	saved, ok := fx.store.GetString(viewstate.SelectedSymbolKey)
	require.True(t, ok)
	assert.Equal(t, "MSFT", saved)

	// A stale load message for the previous symbol keeps the spinner.
	m = send(t, m, chartLoadedMsg{Symbol: "AAPL"})
	assert.True(t, m.chartLoading)
	m = send(t, m, chartLoadedMsg{Symbol: "MSFT"})
	assert.False(t, m.chartLoading)

	m = press(t, m, "p", "p")
	assert.Equal(t, "TSLA", m.Symbol().ID)
}

func TestThemeKeys(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")
	assert.Contains(t, m.View(), "dark")

	m = press(t, m, "t")
	assert.Equal(t, false, fx.store.Get(viewstate.GlobalSettingsKey, "isDarkMode"))
	assert.Equal(t, "light", fx.store.Get(viewstate.GlobalSettingsKey, "currentTheme"))
	trades, _ := m.Table(tablecfg.Trades)
	assert.Equal(t, theme.Light, trades.Theme())
	assert.Equal(t, theme.Light, m.Chart().GetOptions().Theme)

	m = press(t, m, "T")
	assert.Equal(t, "system", fx.store.Get(viewstate.GlobalSettingsKey, "currentTheme"))
	assert.Equal(t, theme.Dark, trades.Theme())
}

func TestNoticeBanner(t *testing.T) {
	m, _ := newModel(t, storage.NewMemory(0), "state will not be saved")

	msg, shown := m.ErrorMessage()
	assert.True(t, shown)
	assert.Contains(t, m.View(), msg)

	m = press(t, m, "esc")
	_, shown = m.ErrorMessage()
	assert.False(t, shown)

	m = send(t, m, ErrorMsg{Message: "boom"})
	msg, shown = m.ErrorMessage()
	assert.True(t, shown)
	assert.Equal(t, "boom", msg)
	m = send(t, m, ClearErrorMsg{})
	_, shown = m.ErrorMessage()
	assert.False(t, shown)
}

func TestViewShowsActivePage(t *testing.T) {
	m, _ := newModel(t, storage.NewMemory(0), "")
	out := m.View()
	assert.Contains(t, out, "Tradeboard")
	assert.Contains(t, out, "Trade Table")
	assert.Contains(t, out, "200 of 200 rows")

	m = press(t, m, "tab")
	out = m.View()
	assert.Contains(t, out, "Table Overview")
	assert.Contains(t, out, "Credit")
	assert.Contains(t, out, "Holdings")

	m = press(t, m, "tab")
	assert.Contains(t, m.View(), "Loading")
	m = send(t, m, chartLoadedMsg{Symbol: "AAPL"})
	assert.Contains(t, m.View(), "AAPL - Apple Inc.")
}

func TestQuitStopsChartWrites(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")
	m = press(t, m, "3")
	m = send(t, m, chartLoadedMsg{Symbol: "AAPL"})
	m = press(t, m, "m")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	fx.clock.Flush()
	assert.Nil(t, fx.store.Get(viewstate.ChartStateKey("AAPL")))
}

func TestTeardownStopsCurrentSymbolWrites(t *testing.T) {
	m, fx := newModel(t, storage.NewMemory(0), "")
	m = press(t, m, "3", "n")
	m = send(t, m, chartLoadedMsg{Symbol: "MSFT"})
	m = press(t, m, "m")

	m.Teardown()
	fx.clock.Flush()
	assert.Nil(t, fx.store.Get(viewstate.ChartStateKey("MSFT")))
	assert.Nil(t, fx.store.Get(viewstate.ChartStateKey("AAPL")))
}
