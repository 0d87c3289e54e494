package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tradeboard/internal/chart"
	"github.com/alexisbeaulieu97/tradeboard/internal/chartstate"
	"github.com/alexisbeaulieu97/tradeboard/internal/dataset"
	"github.com/alexisbeaulieu97/tradeboard/internal/grid"
	"github.com/alexisbeaulieu97/tradeboard/internal/layout"
	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/tablecfg"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

// Deps are the services the dashboard runs on.
type Deps struct {
	Store      *viewstate.Store
	Theme      *theme.State
	Specs      []tablecfg.Spec
	Data       *dataset.Source
	Log        *logger.Logger
	Pagination bool
	PageSize   int
	// Notice is shown as a banner on the first frame.
	Notice string
	// ChartLoadDelay overrides the loading indicator time of a chart.
	ChartLoadDelay time.Duration
	// ChartOptions are passed to every persister, mainly for tests.
	ChartOptions []chartstate.Option
}

// tableView is one mounted table.
type tableView struct {
	spec     tablecfg.Spec
	composer *tablecfg.Composer
	grid     *grid.Grid
	// focus is the focused column among the visible ones.
	focus      int
	panelFocus int
}

func (t *tableView) focusedField() string {
	visible := t.grid.VisibleColumns()
	if len(visible) == 0 {
		return ""
	}
	if t.focus >= len(visible) {
		t.focus = len(visible) - 1
	}
	if t.focus < 0 {
		t.focus = 0
	}
	return visible[t.focus].Field
}

// Model is the main dashboard model
type Model struct {
	deps  Deps
	log   *logger.Logger
	queue *tablecfg.Queue

	// Components
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	filter  textinput.Model

	// Pages
	page          Page
	tables        map[string]*tableView
	overview      *layout.Overview
	overviewFocus int

	// Charts
	symbol       chartstate.Symbol
	chart        *chart.Model
	persister    *chartstate.Persister
	chartLoading bool

	// UI state
	filtering bool
	panelOpen bool
	showHelp  bool
	showError bool
	errorMsg  string

	// Dimensions
	width  int
	height int
}

// NewModel mounts every table and the selected symbol's chart.
func NewModel(deps Deps) (Model, error) {
	if deps.Store == nil {
		deps.Store = viewstate.New(nil, deps.Log)
	}
	if deps.Theme == nil {
		deps.Theme = theme.New(deps.Store, nil)
	}
	if deps.Data == nil {
		deps.Data = dataset.Embedded()
	}
	if deps.Specs == nil {
		deps.Specs = tablecfg.Builtins()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.Prompt = "filter> "
	in.PromptStyle = filterPromptStyle
	in.CharLimit = 120

	m := Model{
		deps:     deps,
		log:      deps.Log.Component("dashboard"),
		queue:    &tablecfg.Queue{},
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		filter:   in,
		page:     PageTrades,
		tables:   make(map[string]*tableView, len(deps.Specs)),
		overview: layout.NewOverview(),
		width:    120,
		height:   40,
	}

	for _, spec := range deps.Specs {
		if err := m.mount(spec); err != nil {
			return Model{}, err
		}
	}
	for _, id := range tablecfg.OverviewIDs() {
		if _, ok := m.tables[id]; ok {
			m.overview.Register(id)
		}
	}

	if deps.Notice != "" {
		m.showError = true
		m.errorMsg = deps.Notice
	}

	m.openSymbol(chartstate.SelectedSymbol(deps.Store))
	m.resize()
	return m, nil
}

func (m *Model) mount(spec tablecfg.Spec) error {
	rows, err := m.deps.Data.Rows(spec.ID)
	if err != nil {
		return err
	}
	composer, err := tablecfg.Compose(rows, spec.Columns, spec.Colors, spec.ID, tablecfg.Deps{
		Store:      m.deps.Store,
		Scheduler:  m.queue,
		Log:        m.deps.Log,
		Pagination: m.deps.Pagination,
		PageSize:   m.deps.PageSize,
	})
	if err != nil {
		return fmt.Errorf("table %s: %w", spec.ID, err)
	}
	m.tables[spec.ID] = &tableView{
		spec:     spec,
		composer: composer,
		grid:     grid.New(composer.GridOptions(m.deps.Theme.Name())),
	}
	return nil
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{readyCmd(), m.spinner.Tick}
	if m.chartLoading {
		cmds = append(cmds, loadChartCmd(m.symbol.ID, m.deps.ChartLoadDelay))
	}
	return tea.Batch(cmds...)
}

// Helper Methods

// Page returns the active page.
func (m *Model) Page() Page { return m.page }

// Table returns a mounted table's grid.
func (m *Model) Table(id string) (*grid.Grid, bool) {
	tv, ok := m.tables[id]
	if !ok {
		return nil, false
	}
	return tv.grid, true
}

// Composer returns a mounted table's composer.
func (m *Model) Composer(id string) (*tablecfg.Composer, bool) {
	tv, ok := m.tables[id]
	if !ok {
		return nil, false
	}
	return tv.composer, true
}

// Chart returns the chart of the selected symbol.
func (m *Model) Chart() *chart.Model { return m.chart }

// Symbol returns the selected symbol.
func (m *Model) Symbol() chartstate.Symbol { return m.symbol }

// Expanded returns the expanded overview table, if any.
func (m *Model) Expanded() (string, bool) { return m.overview.Expanded() }

// ErrorMessage returns the banner text while the banner is shown.
func (m *Model) ErrorMessage() (string, bool) { return m.errorMsg, m.showError }

// Teardown stops pending chart writes. Call it before closing the store.
func (m *Model) Teardown() {
	if m.persister != nil {
		m.persister.Stop()
	}
}

// activeTable returns the table that receives table keys on this page.
func (m *Model) activeTable() *tableView {
	switch m.page {
	case PageTrades:
		return m.tables[tablecfg.Trades]
	case PageOverview:
		if id, ok := m.overview.Expanded(); ok {
			return m.tables[id]
		}
		ids := m.overview.Tables()
		if len(ids) == 0 {
			return nil
		}
		if m.overviewFocus >= len(ids) {
			m.overviewFocus = len(ids) - 1
		}
		return m.tables[ids[m.overviewFocus]]
	default:
		return nil
	}
}

// visibleTables returns the tables drawn on the current page.
func (m *Model) visibleTables() []*tableView {
	switch m.page {
	case PageTrades:
		if tv, ok := m.tables[tablecfg.Trades]; ok {
			return []*tableView{tv}
		}
	case PageOverview:
		var out []*tableView
		for _, id := range m.overview.Visible() {
			out = append(out, m.tables[id])
		}
		return out
	}
	return nil
}

// markReady raises the ready lifecycle of every table now on screen.
func (m *Model) markReady() {
	for _, tv := range m.visibleTables() {
		tv.grid.Ready()
	}
}

// resize spreads the terminal over the visible tables and the chart.
func (m *Model) resize() {
	// Header, breadcrumb, banner and help footer.
	body := m.height - 7
	if body < 6 {
		body = 6
	}

	if tv, ok := m.tables[tablecfg.Trades]; ok {
		width := m.width
		if m.panelOpen && m.page == PageTrades {
			width -= 28
		}
		tv.grid.Resize(width, body-1)
	}

	_, expanded := m.overview.Expanded()
	for _, id := range m.overview.Tables() {
		tv := m.tables[id]
		if expanded {
			if m.overview.IsExpanded(id) {
				tv.grid.Resize(m.width, body-2)
			}
			continue
		}
		tv.grid.Resize(m.width/2, body/2-2)
	}

	if m.chart != nil {
		m.chart.Resize(m.width, body-2)
	}
}

// applyTheme pushes the active palette to every widget.
func (m *Model) applyTheme() {
	name := m.deps.Theme.Name()
	for _, tv := range m.tables {
		tv.grid.SetTheme(name)
	}
	if m.chart != nil {
		m.chart.SetTheme(name)
	}
}

// openSymbol tears down the current chart and mounts symbol's.
func (m *Model) openSymbol(symbol chartstate.Symbol) {
	if m.persister != nil {
		m.persister.Stop()
	}

	candles, err := m.deps.Data.Candles(symbol.ID)
	if err != nil {
		m.log.Error(err, "failed to load price data")
		m.showError = true
		m.errorMsg = fmt.Sprintf("No price data for %s", symbol.ID)
	}

	opts := append([]chartstate.Option{chartstate.WithLogger(m.deps.Log)}, m.deps.ChartOptions...)
	persister := chartstate.NewPersister(m.deps.Store, symbol.ID, opts...)
	c := chart.New(symbol.ID, candles,
		chart.WithTheme(m.deps.Theme.Name()),
		chart.WithOnChange(persister.Notify),
	)
	if state, ok := persister.Load(); ok {
		c.Restore(state)
	}

	m.symbol = symbol
	m.chart = c
	m.persister = persister
	m.chartLoading = true
}

// shiftSymbol selects the symbol delta positions away, wrapping around.
func (m *Model) shiftSymbol(delta int) tea.Cmd {
	index := 0
	for i, s := range chartstate.Symbols {
		if s.ID == m.symbol.ID {
			index = i
		}
	}
	n := len(chartstate.Symbols)
	next := chartstate.Symbols[((index+delta)%n+n)%n]

	if _, err := chartstate.SelectSymbol(m.deps.Store, next.ID); err != nil {
		m.log.Error(err, "failed to persist selected symbol")
	}
	m.openSymbol(next)
	m.resize()
	return tea.Batch(m.spinner.Tick, loadChartCmd(next.ID, m.deps.ChartLoadDelay))
}
