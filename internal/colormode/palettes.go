package colormode

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

type stripe struct {
	even lipgloss.Color
	odd  lipgloss.Color
}

var stripes = map[theme.Name]stripe{
	theme.Light: {even: "#e2e8f0", odd: "#ffffff"},
	theme.Dark:  {even: "#1e293b", odd: "#0f172a"},
}

// StripeColor returns the alternating row color for rowIndex.
func StripeColor(palette theme.Name, rowIndex int) (lipgloss.Color, bool) {
	if rowIndex < 0 {
		return "", false
	}
	s, ok := stripes[palette]
	if !ok {
		s = stripes[theme.Light]
	}
	if rowIndex%2 == 0 {
		return s.even, true
	}
	return s.odd, true
}

// CreditRatingColors runs from green for AAA to dark red for D.
var CreditRatingColors = ThemeColors{
	Light: map[string]lipgloss.Color{
		"AAA": "#d1fae5", "AA+": "#a7f3d0", "AA": "#6ee7b7", "AA-": "#34d399",
		"A+": "#10b981", "A": "#059669", "A-": "#d9f99d",
		"BBB+": "#fef08a", "BBB": "#fde047", "BBB-": "#fbbf24",
		"BB+": "#f59e0b", "BB": "#fb923c", "BB-": "#f97316",
		"B+": "#fecaca", "B": "#fca5a5", "B-": "#f87171",
		"CCC+": "#ef4444", "CCC": "#dc2626", "CCC-": "#b91c1c",
		"CC": "#991b1b", "C": "#7f1d1d", "D": "#450a0a",
	},
	Dark: map[string]lipgloss.Color{
		"AAA": "#064e3b", "AA+": "#065f46", "AA": "#047857", "AA-": "#059669",
		"A+": "#10b981", "A": "#34d399", "A-": "#365314",
		"BBB+": "#713f12", "BBB": "#78350f", "BBB-": "#92400e",
		"BB+": "#9a3412", "BB": "#7c2d12", "BB-": "#6b2e11",
		"B+": "#7f1d1d", "B": "#991b1b", "B-": "#b91c1c",
		"CCC+": "#dc2626", "CCC": "#ef4444", "CCC-": "#f87171",
		"CC": "#fca5a5", "C": "#fecaca", "D": "#fee2e2",
	},
}

var TransactionStatusColors = ThemeColors{
	Light: map[string]lipgloss.Color{
		"COMPLETED": "#dcfce7",
		"PENDING":   "#fef3c7",
		"CANCELLED": "#f1f5f9",
		"FAILED":    "#fecaca",
		"ERROR":     "#fecaca",
	},
	Dark: map[string]lipgloss.Color{
		"COMPLETED": "#14532d",
		"PENDING":   "#713f12",
		"CANCELLED": "#334155",
		"FAILED":    "#7f1d1d",
		"ERROR":     "#7f1d1d",
	},
}

var PnLColors = ThemeColors{
	Light: map[string]lipgloss.Color{Positive: "#dcfce7", Negative: "#fecaca", Zero: "#f1f5f9"},
	Dark:  map[string]lipgloss.Color{Positive: "#14532d", Negative: "#7f1d1d", Zero: "#334155"},
}

var TradeSideColors = ThemeColors{
	Light: map[string]lipgloss.Color{"BUY": "#dbeafe", "SELL": "#fed7aa"},
	Dark:  map[string]lipgloss.Color{"BUY": "#1e3a8a", "SELL": "#9a3412"},
}

var TradeStatusColors = ThemeColors{
	Light: map[string]lipgloss.Color{"FILLED": "#dcfce7", "PENDING": "#fef3c7", "CANCELLED": "#f1f5f9"},
	Dark:  map[string]lipgloss.Color{"FILLED": "#14532d", "PENDING": "#713f12", "CANCELLED": "#334155"},
}

// Built-in table configurations.
var (
	CreditConfig = &Config{Modes: []Mode{
		{ID: "creditRating", Label: "Credit Rating", Field: "creditRating", Colors: CreditRatingColors},
	}}

	HoldingsConfig = &Config{Modes: []Mode{
		{ID: "pnl", Label: "P&L", Field: "unrealizedGainLoss", Colors: PnLColors, Mapper: "sign"},
	}}

	TransactionsConfig = &Config{Modes: []Mode{
		{ID: "transactionStatus", Label: "Transaction Status", Field: "status", Colors: TransactionStatusColors},
	}}

	TradesConfig = &Config{Modes: []Mode{
		{ID: "side", Label: "Side (Buy/Sell)", Field: "side", Colors: TradeSideColors},
		{ID: "status", Label: "Status", Field: "status", Colors: TradeStatusColors},
	}}
)
