package config

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
	"github.com/alexisbeaulieu97/tradeboard/internal/tablecfg"
	apperrors "github.com/alexisbeaulieu97/tradeboard/pkg/errors"
)

// ValidateConfig performs schema and cross-field validation on the settings.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.Storage.Backend == storage.BackendMemory && cfg.Storage.Path != "" {
		return apperrors.NewValidationError("storage.path", "the memory backend does not use a path", nil)
	}
	if cfg.Storage.QuotaBytes > 0 && cfg.Storage.Backend != storage.BackendMemory {
		return apperrors.NewValidationError("storage.quota_bytes", "only the memory backend supports a quota", nil)
	}

	builtins := tablecfg.Builtins()
	ids := make([]string, 0, len(cfg.Tables))
	for id := range cfg.Tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := tablecfg.Find(builtins, id); !ok {
			return apperrors.NewValidationError(fieldForTable(id), fmt.Sprintf("unknown table %q", id), nil)
		}
		seen := make(map[string]struct{}, len(cfg.Tables[id].ColorModes))
		for i, mode := range cfg.Tables[id].ColorModes {
			if _, dup := seen[mode.ID]; dup {
				field := fmt.Sprintf("%s.color_modes[%d].id", fieldForTable(id), i)
				return apperrors.NewValidationError(field, fmt.Sprintf("duplicate mode id %q", mode.ID), nil)
			}
			seen[mode.ID] = struct{}{}
		}
	}

	return nil
}

// TableSpecs returns the built-in tables with the configured color modes
// merged in, and checks every mode against its table's columns.
func TableSpecs(cfg *Config) ([]tablecfg.Spec, error) {
	specs := tablecfg.WithExtraModes(tablecfg.Builtins(), cfg.ExtraColorModes())
	if err := tablecfg.Validate(specs); err != nil {
		return nil, err
	}
	return specs, nil
}
