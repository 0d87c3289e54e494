package columns

import (
	"time"

	"github.com/alexisbeaulieu97/tradeboard/internal/rating"
)

func usd() Formatter { return Currency("USD") }

func numberColumn(field, label string, format Formatter) Definition {
	return Definition{
		Field:     field,
		Label:     label,
		Kind:      Numeric,
		Filter:    NumberFilter,
		Formatter: format,
	}
}

func setColumn(field, label string, values ...string) Definition {
	return Definition{Field: field, Label: label, Kind: Text, Filter: SetFilter, SetValues: values}
}

func textColumn(field, label string) Definition {
	return Definition{Field: field, Label: label, Kind: Text, Filter: TextFilter}
}

func hidden(d Definition) Definition {
	d.InitiallyHidden = true
	return d
}

func dateColumn(field, label string, format Formatter, missing string) Definition {
	return Definition{
		Field:     field,
		Label:     label,
		Kind:      Date,
		Filter:    TextFilter,
		Formatter: format,
		Tooltip:   LongDate(time.Local, missing),
	}
}

// Trades returns the columns of the trade blotter.
func Trades() []Definition {
	return []Definition{
		textColumn("id", "Trade ID"),
		setColumn("status", "Status", "PENDING", "FILLED", "CANCELLED"),
		textColumn("accountId", "Account ID"),
		textColumn("positionId", "Position ID"),
		numberColumn("price", "Price", DollarFixed(2)),
		numberColumn("quantity", "Qty", nil),
		setColumn("side", "Side", "BUY", "SELL"),
		textColumn("ticker", "Ticker"),
		dateColumn("orderTime", "Order Time", DateTime(time.Local), ""),
		dateColumn("lastUpdate", "Last Update", DateTime(time.Local), ""),
		textColumn("currency", "Currency"),
	}
}

// Credit returns the counterparty credit columns.
func Credit() []Definition {
	ratingCol := setColumn("creditRating", "Rating", rating.Scale...)
	ratingCol.Comparator = rating.Compare

	return []Definition{
		hidden(textColumn("id", "ID")),
		hidden(textColumn("counterpartyId", "CP ID")),
		textColumn("counterpartyName", "Counterparty"),
		ratingCol,
		numberColumn("exposure", "Exposure", usd()),
		numberColumn("collateral", "Collateral", usd()),
		numberColumn("netExposure", "Net Exp.", usd()),
		numberColumn("riskLimit", "Limit", usd()),
		numberColumn("utilizationPercent", "Util. %", Percent(1, 1)),
	}
}

// Holdings returns the portfolio holdings columns.
func Holdings() []Definition {
	weight := numberColumn("weight", "Wt %", Percent(100, 1))
	weight.FilterValue = Scaled("weight", 100)

	return []Definition{
		hidden(textColumn("id", "ID")),
		hidden(textColumn("portfolioId", "Port. ID")),
		textColumn("symbol", "Symbol"),
		numberColumn("quantity", "Qty", Grouped),
		numberColumn("marketValue", "Mkt Value", usd()),
		numberColumn("costBasis", "Cost", usd()),
		numberColumn("unrealizedGainLoss", "P&L", usd()),
		weight,
		setColumn("sector", "Sector"),
	}
}

// Risk returns the portfolio risk metric columns.
func Risk() []Definition {
	volatility := numberColumn("volatility", "Vol. %", Percent(100, 1))
	volatility.FilterValue = Scaled("volatility", 100)

	return []Definition{
		hidden(textColumn("id", "ID")),
		hidden(textColumn("portfolioId", "Port. ID")),
		setColumn("riskType", "Type"),
		numberColumn("VaR", "VaR", usd()),
		numberColumn("expectedShortfall", "Exp. Shortfall", usd()),
		volatility,
		numberColumn("beta", "Beta", Fixed(2)),
		numberColumn("correlation", "Corr.", Fixed(2)),
		dateColumn("riskDate", "Date", ShortDate(time.Local), Unknown),
	}
}

// Transactions returns the cash transaction columns.
func Transactions() []Definition {
	return []Definition{
		hidden(textColumn("id", "ID")),
		hidden(textColumn("accountId", "Acct ID")),
		setColumn("transactionType", "Type"),
		numberColumn("amount", "Amount", usd()),
		hidden(textColumn("currency", "Curr")),
		textColumn("description", "Description"),
		setColumn("category", "Category"),
		dateColumn("timestamp", "Time", DateTime(time.Local), Unknown),
		setColumn("status", "Status", "COMPLETED", "PENDING", "CANCELLED", "FAILED", "ERROR"),
		hidden(textColumn("reference", "Ref")),
		textColumn("counterparty", "Counterparty"),
		numberColumn("fees", "Fees", DollarFixed(2)),
	}
}
