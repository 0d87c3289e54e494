package tablecfg

import (
	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
)

// Table ids used as persistence prefixes.
const (
	Trades       = "trades"
	Credit       = "credit"
	Holdings     = "holdings"
	Risk         = "risk"
	Transactions = "transactions"
)

// Spec registers a table: its id, title, columns and color modes.
type Spec struct {
	ID      string
	Title   string
	Columns []columns.Definition
	Colors  *colormode.Config
}

// Builtins returns every table the dashboard shows. The trade blotter comes
// first, followed by the overview tables in display order.
func Builtins() []Spec {
	return []Spec{
		{ID: Trades, Title: "Trades", Columns: columns.Trades(), Colors: colormode.TradesConfig},
		{ID: Credit, Title: "Credit", Columns: columns.Credit(), Colors: colormode.CreditConfig},
		{ID: Holdings, Title: "Holdings", Columns: columns.Holdings(), Colors: colormode.HoldingsConfig},
		{ID: Risk, Title: "Risk", Columns: columns.Risk()},
		{ID: Transactions, Title: "Transactions", Columns: columns.Transactions(), Colors: colormode.TransactionsConfig},
	}
}

// OverviewIDs lists the tables of the overview page.
func OverviewIDs() []string {
	return []string{Credit, Holdings, Risk, Transactions}
}

// WithExtraModes returns specs whose color configs include extra modes keyed
// by table id. Tables without modes gain a config when extras name them.
func WithExtraModes(specs []Spec, extra map[string][]colormode.Mode) []Spec {
	out := make([]Spec, len(specs))
	for i, spec := range specs {
		if modes, ok := extra[spec.ID]; ok && len(modes) > 0 {
			spec.Colors = spec.Colors.Merge(modes)
		}
		out[i] = spec
	}
	return out
}

// Validate checks every spec's color modes against its columns.
func Validate(specs []Spec) error {
	for _, spec := range specs {
		if err := spec.Colors.Validate(spec.ID, columns.Fields(spec.Columns)); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the spec with id.
func Find(specs []Spec, id string) (Spec, bool) {
	for _, spec := range specs {
		if spec.ID == id {
			return spec, true
		}
	}
	return Spec{}, false
}
