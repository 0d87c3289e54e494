// Package colormode resolves row background colors from toggleable,
// per-table color modes with an alternating stripe fallback.
package colormode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
	apperrors "github.com/alexisbeaulieu97/tradeboard/pkg/errors"
)

// None is the active mode id when no color mode is applied.
const None = "none"

// ValueMapper turns a raw field value into a category key.
type ValueMapper func(value any) string

// ThemeColors maps category keys to colors for each palette.
type ThemeColors struct {
	Light map[string]lipgloss.Color `yaml:"light" json:"light" validate:"omitempty,dive,keys,required,endkeys,term_color"`
	Dark  map[string]lipgloss.Color `yaml:"dark" json:"dark" validate:"omitempty,dive,keys,required,endkeys,term_color"`
}

// For returns the colors of the given palette.
func (c ThemeColors) For(name theme.Name) map[string]lipgloss.Color {
	if name == theme.Dark {
		return c.Dark
	}
	return c.Light
}

// Mode colors rows by the value of one field.
type Mode struct {
	ID     string      `yaml:"id" json:"id" validate:"required"`
	Label  string      `yaml:"label" json:"label" validate:"required"`
	Field  string      `yaml:"field" json:"field" validate:"required"`
	Colors ThemeColors `yaml:"colors" json:"colors"`
	// Mapper names a registered ValueMapper. ValueMapper takes precedence.
	Mapper      string      `yaml:"mapper,omitempty" json:"mapper,omitempty" validate:"omitempty,value_mapper"`
	ValueMapper ValueMapper `yaml:"-" json:"-"`
}

// CategoryKey maps value to the key used to look up the mode's colors.
// Without a mapper the key is the upper-cased string form of the value.
func (m Mode) CategoryKey(value any) string {
	if m.ValueMapper != nil {
		return m.ValueMapper(value)
	}
	if m.Mapper != "" {
		if mapper, ok := LookupMapper(m.Mapper); ok {
			return mapper(value)
		}
	}
	return strings.ToUpper(stringify(value))
}

// Config is the set of color modes a table offers.
type Config struct {
	Modes []Mode `yaml:"modes" json:"modes" validate:"dive"`
}

// Find returns the mode with the given id.
func (c *Config) Find(id string) (Mode, bool) {
	if c == nil {
		return Mode{}, false
	}
	for _, mode := range c.Modes {
		if mode.ID == id {
			return mode, true
		}
	}
	return Mode{}, false
}

// ForField returns the first mode targeting field.
func (c *Config) ForField(field string) (Mode, bool) {
	if c == nil {
		return Mode{}, false
	}
	for _, mode := range c.Modes {
		if mode.Field == field {
			return mode, true
		}
	}
	return Mode{}, false
}

// Merge returns a config holding c's modes followed by extra's. A mode in
// extra replaces the mode of c with the same id. Repeated ids within extra
// are all kept so Validate reports them.
func (c *Config) Merge(extra []Mode) *Config {
	merged := &Config{}
	base := 0
	if c != nil {
		merged.Modes = append(merged.Modes, c.Modes...)
		base = len(c.Modes)
	}
	overridden := make(map[string]bool, len(extra))
	for _, mode := range extra {
		replaced := false
		if !overridden[mode.ID] {
			for i := 0; i < base; i++ {
				if merged.Modes[i].ID == mode.ID {
					merged.Modes[i] = mode
					overridden[mode.ID] = true
					replaced = true
					break
				}
			}
		}
		if !replaced {
			merged.Modes = append(merged.Modes, mode)
		}
	}
	return merged
}

// Validate checks mode ids, labels and mappers, and that every mode targets
// one of fields. table only decorates the returned error.
func (c *Config) Validate(table string, fields []string) error {
	if c == nil {
		return nil
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}

	seen := make(map[string]struct{}, len(c.Modes))
	for i, mode := range c.Modes {
		prefix := fmt.Sprintf("%s.modes[%d]", table, i)
		switch {
		case mode.ID == "":
			return apperrors.NewValidationError(prefix+".id", "is required", nil)
		case mode.ID == None:
			return apperrors.NewValidationError(prefix+".id", fmt.Sprintf("%q is reserved", None), nil)
		case mode.Label == "":
			return apperrors.NewValidationError(prefix+".label", "is required", nil)
		}
		if _, dup := seen[mode.ID]; dup {
			return apperrors.NewValidationError(prefix+".id", fmt.Sprintf("duplicate mode id %q", mode.ID), nil)
		}
		seen[mode.ID] = struct{}{}

		if mode.Mapper != "" && mode.ValueMapper == nil {
			if _, ok := LookupMapper(mode.Mapper); !ok {
				return apperrors.NewValidationError(prefix+".mapper", fmt.Sprintf("unknown value mapper %q", mode.Mapper), nil)
			}
		}
		if _, ok := known[mode.Field]; !ok {
			return apperrors.NewConfigReferenceError(table, mode.ID, mode.Field)
		}
	}
	return nil
}

// ResolveRowColor returns the background for a row. The active mode's color
// wins when the row carries the mode's field and the category has a color
// for the palette; otherwise the stripe color for rowIndex applies. It
// reports false only when there is no row data or no row index.
func ResolveRowColor(row map[string]any, activeModeID string, cfg *Config, palette theme.Name, rowIndex int) (lipgloss.Color, bool) {
	if row == nil || rowIndex < 0 {
		return "", false
	}

	if activeModeID != None && cfg != nil {
		if mode, ok := cfg.Find(activeModeID); ok {
			if value, present := row[mode.Field]; present {
				if color, found := mode.Colors.For(palette)[mode.CategoryKey(value)]; found && color != "" {
					return color, true
				}
			}
		}
	}

	return StripeColor(palette, rowIndex)
}

// Toggle returns the active mode after the toggle of modeID is clicked.
func Toggle(activeModeID, modeID string) string {
	if activeModeID == modeID {
		return None
	}
	return modeID
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
