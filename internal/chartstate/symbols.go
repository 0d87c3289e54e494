package chartstate

import (
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

// Symbol is an instrument with a price chart.
type Symbol struct {
	ID    string
	Name  string
	Label string
}

// DefaultSymbol is shown when nothing valid was selected before.
const DefaultSymbol = "AAPL"

// Symbols lists the charted instruments.
var Symbols = []Symbol{
	{ID: "AAPL", Name: "Apple Inc.", Label: "AAPL - Apple Inc."},
	{ID: "MSFT", Name: "Microsoft Corporation", Label: "MSFT - Microsoft Corporation"},
	{ID: "TSLA", Name: "Tesla, Inc.", Label: "TSLA - Tesla, Inc."},
}

// FindSymbol looks up a symbol by id.
func FindSymbol(id string) (Symbol, bool) {
	for _, s := range Symbols {
		if s.ID == id {
			return s, true
		}
	}
	return Symbol{}, false
}

// SelectedSymbol returns the persisted selection, or the default symbol when
// nothing valid is stored.
func SelectedSymbol(store *viewstate.Store) Symbol {
	if id, ok := store.GetString(viewstate.SelectedSymbolKey); ok {
		if s, found := FindSymbol(id); found {
			return s
		}
	}
	s, _ := FindSymbol(DefaultSymbol)
	return s
}

// SelectSymbol persists id as the selected symbol. Unknown ids are ignored.
func SelectSymbol(store *viewstate.Store, id string) (Symbol, error) {
	s, ok := FindSymbol(id)
	if !ok {
		return SelectedSymbol(store), nil
	}
	return s, store.Set(viewstate.SelectedSymbolKey, nil, s.ID)
}
