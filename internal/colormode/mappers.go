package colormode

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Category keys produced by Sign.
const (
	Positive = "POSITIVE"
	Negative = "NEGATIVE"
	Zero     = "ZERO"
)

var (
	mappersMu sync.RWMutex
	mappers   = map[string]ValueMapper{
		"sign":  Sign,
		"upper": Upper,
	}
)

// RegisterMapper makes mapper available to modes by name.
func RegisterMapper(name string, mapper ValueMapper) {
	mappersMu.Lock()
	defer mappersMu.Unlock()
	mappers[name] = mapper
}

// LookupMapper returns the mapper registered under name.
func LookupMapper(name string) (ValueMapper, bool) {
	mappersMu.RLock()
	defer mappersMu.RUnlock()
	mapper, ok := mappers[name]
	return mapper, ok
}

// MapperNames lists the registered mapper names.
func MapperNames() []string {
	mappersMu.RLock()
	defer mappersMu.RUnlock()
	names := make([]string, 0, len(mappers))
	for name := range mappers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sign buckets a numeric value as POSITIVE, NEGATIVE or ZERO. Values that
// are not numbers count as ZERO.
func Sign(value any) string {
	d, ok := toDecimal(value)
	if !ok {
		return Zero
	}
	switch d.Sign() {
	case 1:
		return Positive
	case -1:
		return Negative
	default:
		return Zero
	}
}

// Upper is the default mapping made explicit.
func Upper(value any) string {
	return strings.ToUpper(stringify(value))
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
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
	case int32:
		return decimal.NewFromInt32(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	case bool:
		if v {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}
