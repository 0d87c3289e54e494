package viewstate

// GlobalSettingsKey holds the theme preference.
const GlobalSettingsKey = "globalSettings"

// SelectedSymbolKey holds the last symbol shown on the candlestick page.
const SelectedSymbolKey = "candlestick-selected-symbol"

func ColorModeKey(tableID string) string   { return tableID + "-colorMode" }
func ColumnStateKey(tableID string) string { return tableID + "-columnState" }
func FilterModelKey(tableID string) string { return tableID + "-filterModel" }
func SortModelKey(tableID string) string   { return tableID + "-sortModel" }

// ChartStateKey is the namespace of one symbol's chart view state.
func ChartStateKey(symbolID string) string {
	return "candlestick-chart-state-" + symbolID
}
