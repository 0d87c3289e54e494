package grid

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/tradeboard/internal/columns"
)

// Matches reports whether value passes the condition.
func (c FilterCondition) Matches(value any) bool {
	switch c.FilterType {
	case FilterSet:
		if c.Values == nil {
			return true
		}
		s := columns.AsString(value)
		for _, v := range c.Values {
			if v == s {
				return true
			}
		}
		return false
	case FilterNumber:
		return c.matchNumber(value)
	default:
		return c.matchText(value)
	}
}

// Describe renders the condition for display.
func (c FilterCondition) Describe() string {
	switch {
	case c.FilterType == FilterSet:
		return "in [" + strings.Join(c.Values, ", ") + "]"
	case c.Type == OpBlank || c.Type == OpNotBlank:
		return c.Type
	case c.Type == OpInRange:
		return fmt.Sprintf("%v..%v", c.Filter, c.FilterTo)
	default:
		return fmt.Sprintf("%s %v", c.Type, c.Filter)
	}
}

func (c FilterCondition) matchText(value any) bool {
	s := strings.ToLower(columns.AsString(value))
	needle := strings.ToLower(columns.AsString(c.Filter))

	switch c.Type {
	case OpBlank:
		return strings.TrimSpace(s) == ""
	case OpNotBlank:
		return strings.TrimSpace(s) != ""
	case OpNotContains:
		return !strings.Contains(s, needle)
	case OpEquals:
		return s == needle
	case OpNotEqual:
		return s != needle
	case OpStartsWith:
		return strings.HasPrefix(s, needle)
	case OpEndsWith:
		return strings.HasSuffix(s, needle)
	default:
		return strings.Contains(s, needle)
	}
}

func (c FilterCondition) matchNumber(value any) bool {
	v, ok := columns.AsFloat(value)
	switch c.Type {
	case OpBlank:
		return !ok
	case OpNotBlank:
		return ok
	}
	if !ok {
		return false
	}

	f, okF := columns.AsFloat(c.Filter)
	if !okF {
		return true
	}

	switch c.Type {
	case OpNotEqual:
		return v != f
	case OpLessThan:
		return v < f
	case OpLessEqual:
		return v <= f
	case OpGreaterThan:
		return v > f
	case OpGreaterEqual:
		return v >= f
	case OpInRange:
		to, okTo := columns.AsFloat(c.FilterTo)
		if !okTo {
			return v >= f
		}
		lo, hi := f, to
		if lo > hi {
			lo, hi = hi, lo
		}
		return v >= lo && v <= hi
	default:
		return v == f
	}
}

// ParseFilter builds a condition from user input for def. Number columns
// accept "> 5", ">= 5", "< 5", "<= 5", "!= 5", "= 5", "1..10", "blank" and
// "notBlank"; set columns accept a comma-separated list; text columns accept
// a prefix such as "=", "!=", "^", "$" or "!" before the needle. An empty
// input returns nil, meaning "no filter".
func ParseFilter(def columns.Definition, input string) *FilterCondition {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	switch def.Filter {
	case columns.SetFilter:
		var values []string
		for _, part := range strings.Split(input, ",") {
			if p := strings.TrimSpace(part); p != "" {
				values = append(values, p)
			}
		}
		return &FilterCondition{FilterType: FilterSet, Values: values}
	case columns.NumberFilter:
		return parseNumberFilter(input)
	default:
		return parseTextFilter(input)
	}
}

func parseNumberFilter(input string) *FilterCondition {
	cond := &FilterCondition{FilterType: FilterNumber}
	if input == OpBlank || input == OpNotBlank {
		cond.Type = input
		return cond
	}
	if lo, hi, ok := strings.Cut(input, ".."); ok {
		cond.Type = OpInRange
		cond.Filter = numberOrString(lo)
		cond.FilterTo = numberOrString(hi)
		return cond
	}

	ops := []struct {
		prefix string
		op     string
	}{
		{">=", OpGreaterEqual},
		{"<=", OpLessEqual},
		{"!=", OpNotEqual},
		{">", OpGreaterThan},
		{"<", OpLessThan},
		{"=", OpEquals},
	}
	cond.Type = OpEquals
	for _, o := range ops {
		if rest, ok := strings.CutPrefix(input, o.prefix); ok {
			cond.Type = o.op
			input = rest
			break
		}
	}
	cond.Filter = numberOrString(input)
	return cond
}

func parseTextFilter(input string) *FilterCondition {
	cond := &FilterCondition{FilterType: FilterText, Type: OpContains}
	if input == OpBlank || input == OpNotBlank {
		cond.Type = input
		return cond
	}

	ops := []struct {
		prefix string
		op     string
	}{
		{"!=", OpNotEqual},
		{"=", OpEquals},
		{"^", OpStartsWith},
		{"$", OpEndsWith},
		{"!", OpNotContains},
	}
	for _, o := range ops {
		if rest, ok := strings.CutPrefix(input, o.prefix); ok {
			cond.Type = o.op
			input = rest
			break
		}
	}
	cond.Filter = strings.TrimSpace(input)
	return cond
}

func numberOrString(s string) any {
	s = strings.TrimSpace(s)
	if f, ok := columns.AsFloat(s); ok {
		return f
	}
	return s
}
