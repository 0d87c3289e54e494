package tablecfg

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
	"github.com/alexisbeaulieu97/tradeboard/internal/grid"
	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
	apperrors "github.com/alexisbeaulieu97/tradeboard/pkg/errors"
)

// recordingStorage counts writes per key on top of the memory backend.
type recordingStorage struct {
	*storage.Memory
	writes map[string][]string
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{Memory: storage.NewMemory(0), writes: map[string][]string{}}
}

func (r *recordingStorage) SetItem(key, value string) error {
	r.writes[key] = append(r.writes[key], value)
	return r.Memory.SetItem(key, value)
}

func tradeRows() []map[string]any {
	return []map[string]any{
		{"id": "t1", "status": "FILLED", "side": "BUY", "price": 10.0, "quantity": 5.0},
		{"id": "t2", "status": "PENDING", "side": "SELL", "price": 30.0, "quantity": 1.0},
		{"id": "t3", "status": "CANCELLED", "side": "BUY", "price": 20.0, "quantity": 2.0},
	}
}

func compose(t *testing.T, backend storage.Storage, sched Scheduler) (*Composer, *viewstate.Store) {
	t.Helper()
	store := viewstate.New(backend, logger.Nop())
	c, err := Compose(tradeRows(), columns.Trades(), colormode.TradesConfig, Trades, Deps{Store: store, Scheduler: sched, Log: logger.Nop()})
	require.NoError(t, err)
	return c, store
}

func TestComposeRejectsDanglingColorMode(t *testing.T) {
	cfg := &colormode.Config{Modes: []colormode.Mode{{ID: "sector", Label: "Sector", Field: "sector"}}}
	_, err := Compose(nil, columns.Trades(), cfg, Trades, Deps{})

	var refErr *apperrors.ConfigReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "sector", refErr.Field)
}

func TestHeaderDecoration(t *testing.T) {
	c, _ := compose(t, storage.NewMemory(0), Immediate{})
	cfg := c.Config()

	headers := map[string]grid.HeaderComponent{}
	for _, col := range cfg.Columns {
		headers[col.Def.Field] = col.Header
	}

	assert.Nil(t, headers["id"], "plain text column")
	assert.Nil(t, headers["ticker"])
	require.NotNil(t, headers["price"], "numeric column")
	require.NotNil(t, headers["side"], "color mode target")

	price := headers["price"](grid.HeaderParams{Column: columns.Definition{Label: "Price"}, Sort: grid.SortAsc})
	assert.Equal(t, "▲", price.SortIndicator)
	assert.True(t, price.FilterTrigger)
	assert.Nil(t, price.Toggle)

	side := headers["side"](grid.HeaderParams{Column: columns.Definition{Label: "Side"}})
	require.NotNil(t, side.Toggle)
	assert.False(t, side.Toggle.Active)

	side.Toggle.OnClick()
	side = headers["side"](grid.HeaderParams{Column: columns.Definition{Label: "Side"}})
	assert.True(t, side.Toggle.Active)
	assert.Equal(t, "side", c.ActiveColorMode())
}

func TestRowStyleReadsCurrentMode(t *testing.T) {
	c, _ := compose(t, storage.NewMemory(0), Immediate{})
	resolve := c.Config().RowStyle
	row := map[string]any{"side": "BUY", "status": "FILLED"}

	color, ok := resolve(row, 0, theme.Light)
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("#e2e8f0"), color)

	c.ToggleColorMode("side")
	color, _ = resolve(row, 0, theme.Light)
	assert.Equal(t, lipgloss.Color("#dbeafe"), color)

	c.ToggleColorMode("status")
	color, _ = resolve(row, 0, theme.Dark)
	assert.Equal(t, lipgloss.Color("#14532d"), color)
}

func TestToggleTwicePersistsEachValueOnce(t *testing.T) {
	backend := newRecordingStorage()
	c, _ := compose(t, backend, Immediate{})

	c.ToggleColorMode("side")
	c.ToggleColorMode("side")

	assert.Equal(t, colormode.None, c.ActiveColorMode())
	assert.Equal(t, []string{`"side"`, `"none"`}, backend.writes["trades-colorMode"])
}

func TestToggleUnknownModeIsIgnored(t *testing.T) {
	backend := newRecordingStorage()
	c, _ := compose(t, backend, Immediate{})

	c.ToggleColorMode("sector")
	assert.Equal(t, colormode.None, c.ActiveColorMode())
	assert.Empty(t, backend.writes)
}

func TestColorModeRestoredOnCompose(t *testing.T) {
	backend := storage.NewMemory(0)
	first, _ := compose(t, backend, Immediate{})
	first.ToggleColorMode("status")

	second, _ := compose(t, backend, Immediate{})
	assert.Equal(t, "status", second.ActiveColorMode())

	require.NoError(t, backend.SetItem("trades-colorMode", `"retired-mode"`))
	third, _ := compose(t, backend, Immediate{})
	assert.Equal(t, colormode.None, third.ActiveColorMode())
}

func TestLifecyclePersistsAndRestores(t *testing.T) {
	backend := storage.NewMemory(0)
	c, store := compose(t, backend, Immediate{})
	g := grid.New(c.GridOptions(theme.Dark))
	g.Ready()

	g.ClickHeader("price", grid.RegionLabel)
	g.ClickHeader("price", grid.RegionLabel)
	g.SetColumnFilter("side", &grid.FilterCondition{FilterType: grid.FilterSet, Values: []string{"BUY"}})
	g.MoveColumn("ticker", -10)
	g.SetColumnVisible("currency", false)

	var sortModel []grid.ColumnState
	require.True(t, store.Decode("trades-sortModel", &sortModel))
	require.Len(t, sortModel, 1)
	assert.Equal(t, "price", sortModel[0].ColID)
	assert.Equal(t, grid.SortDesc, sortModel[0].Sort)
	assert.Nil(t, sortModel[0].Hide)

	var filters grid.FilterModel
	require.True(t, store.Decode("trades-filterModel", &filters))
	assert.Equal(t, []string{"BUY"}, filters["side"].Values)

	var layout []grid.ColumnState
	require.True(t, store.Decode("trades-columnState", &layout))
	assert.Equal(t, "ticker", layout[0].ColID)

	// A fresh mount of the same table comes back in the same shape.
	again, _ := compose(t, backend, Immediate{})
	restored := grid.New(again.GridOptions(theme.Dark))
	restored.Ready()

	assert.Equal(t, "ticker", restored.Columns()[0].Def.Field)
	assert.True(t, restored.Hidden("currency"))
	assert.Equal(t, grid.SortDesc, restored.Sort("price"))
	rows := restored.DisplayedRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "t3", rows[0]["id"])
	assert.Equal(t, "t1", rows[1]["id"])
}

func TestReadyIgnoresMalformedState(t *testing.T) {
	backend := storage.NewMemory(0)
	require.NoError(t, backend.SetItem("trades-columnState", "{broken"))
	require.NoError(t, backend.SetItem("trades-filterModel", `["not","a","map"]`))
	require.NoError(t, backend.SetItem("trades-sortModel", `{"colId":"price"}`))

	c, _ := compose(t, backend, Immediate{})
	g := grid.New(c.GridOptions(theme.Light))

	assert.NotPanics(t, g.Ready)
	assert.Len(t, g.DisplayedRows(), 3)
	assert.Equal(t, "id", g.Columns()[0].Def.Field)
	assert.Equal(t, grid.SortNone, g.Sort("price"))
}

func TestRefitIsDeferred(t *testing.T) {
	queue := &Queue{}
	c, store := compose(t, storage.NewMemory(0), queue)
	g := grid.New(c.GridOptions(theme.Dark))
	g.Ready()

	g.SetColumnVisible("accountId", false)
	g.SetToolPanelVisible(true)
	assert.Equal(t, 2, queue.Len())
	assert.Nil(t, store.Get("trades-columnState"), "layout is saved after the re-fit")

	assert.Equal(t, 2, queue.Drain())
	assert.Zero(t, queue.Len())
	assert.NotNil(t, store.Get("trades-columnState"))
	assert.True(t, g.Hidden("accountId"))
}

func TestSortModelDropsUnsorted(t *testing.T) {
	idx := 0
	hide := false
	model := SortModel([]grid.ColumnState{
		{ColID: "a", Hide: &hide},
		{ColID: "b", Sort: grid.SortAsc, SortIndex: &idx, Width: 10, Hide: &hide},
	})
	require.Len(t, model, 1)
	assert.Equal(t, grid.ColumnState{ColID: "b", Sort: grid.SortAsc, SortIndex: &idx}, model[0])

	assert.NotNil(t, SortModel(nil))
}

func TestBuiltinsValidate(t *testing.T) {
	specs := Builtins()
	require.NoError(t, Validate(specs))

	extended := WithExtraModes(specs, map[string][]colormode.Mode{
		Risk: {{ID: "riskType", Label: "Type", Field: "riskType", Colors: colormode.ThemeColors{}}},
	})
	risk, ok := Find(extended, Risk)
	require.True(t, ok)
	require.NotNil(t, risk.Colors)
	assert.Len(t, risk.Colors.Modes, 1)
	require.NoError(t, Validate(extended))

	broken := WithExtraModes(specs, map[string][]colormode.Mode{
		Credit: {{ID: "bad", Label: "Bad", Field: "nope"}},
	})
	assert.Error(t, Validate(broken))

	original, _ := Find(specs, Risk)
	assert.Nil(t, original.Colors)
}
