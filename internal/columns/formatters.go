package columns

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Unknown is shown for missing values by formatters that handle them.
const Unknown = "(unknown)"

const (
	dateTimeLayout = "1/2/2006, 3:04:05 PM"
	dateLayout     = "1/2/2006"
	longLayout     = "Monday, January 2, 2006 at 3:04:05 PM MST"
)

// Currency formats amounts in the given ISO currency with grouping and the
// currency's minor-unit precision, e.g. $1,234.50.
func Currency(code string) Formatter {
	return func(value any) string {
		d, ok := toDecimal(value)
		if !ok {
			return Unknown
		}
		m, ok := toMoney(d, code)
		if !ok {
			return d.String() + " " + code
		}
		return m.Display()
	}
}

// DollarFixed formats with a $ prefix and a fixed number of decimals and no
// grouping, e.g. $101.25.
func DollarFixed(places int32) Formatter {
	return func(value any) string {
		d, ok := toDecimal(value)
		if !ok {
			return Unknown
		}
		if d.IsNegative() {
			return "-$" + d.Abs().StringFixed(places)
		}
		return "$" + d.StringFixed(places)
	}
}

// Grouped formats a number with thousands separators, e.g. 12,500.
func Grouped(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return Unknown
	}
	return humanize.Commaf(f)
}

// Percent multiplies by scale and renders with places decimals and a % sign.
// Use scale 100 for ratios and 1 for values already in percent.
func Percent(scale int64, places int32) Formatter {
	return func(value any) string {
		d, ok := toDecimal(value)
		if !ok {
			return Unknown
		}
		return d.Mul(decimal.NewFromInt(scale)).StringFixed(places) + "%"
	}
}

// Fixed renders a number with places decimals.
func Fixed(places int32) Formatter {
	return func(value any) string {
		d, ok := toDecimal(value)
		if !ok {
			return Unknown
		}
		return d.StringFixed(places)
	}
}

// DateTime renders timestamps as 1/2/2006, 3:04:05 PM in loc.
func DateTime(loc *time.Location) Formatter {
	return timeFormatter(loc, dateTimeLayout, Unknown)
}

// ShortDate renders timestamps as 1/2/2006 in loc.
func ShortDate(loc *time.Location) Formatter {
	return timeFormatter(loc, dateLayout, Unknown)
}

// LongDate renders the verbose form used for tooltips. Missing values
// render as missing.
func LongDate(loc *time.Location, missing string) Formatter {
	return timeFormatter(loc, longLayout, missing)
}

func timeFormatter(loc *time.Location, layout, missing string) Formatter {
	if loc == nil {
		loc = time.Local
	}
	return func(value any) string {
		t, ok := toTime(value)
		if !ok {
			return missing
		}
		return t.In(loc).Format(layout)
	}
}

// Scaled returns a filter value getter that multiplies field by factor.
func Scaled(field string, factor float64) ValueGetter {
	return func(row map[string]any) any {
		f, ok := toFloat(row[field])
		if !ok {
			return nil
		}
		return f * factor
	}
}

// AsFloat converts a cell value to a float when it is numeric.
func AsFloat(value any) (float64, bool) { return toFloat(value) }

// AsString returns the unformatted string form of a cell value.
func AsString(value any) string {
	if value == nil {
		return ""
	}
	return plain(value)
}

func toMoney(d decimal.Decimal, code string) (*money.Money, bool) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, false
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code), true
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case decimal.Decimal:
		return v.InexactFloat64(), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toTime accepts time.Time, epoch milliseconds and date strings in any
// common layout.
func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, !v.IsZero()
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseAny(v)
		return t, err == nil
	default:
		ms, ok := toFloat(v)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)), true
	}
}

func plain(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
