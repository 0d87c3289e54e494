package config

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/tradeboard/internal/colormode"
	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	hexColor      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("storage_backend", func(fl validator.FieldLevel) bool {
			return storage.IsBackend(fl.Field().String())
		})

		_ = v.RegisterValidation("value_mapper", func(fl validator.FieldLevel) bool {
			_, ok := colormode.LookupMapper(fl.Field().String())
			return ok
		})

		// Hex colors or ANSI palette indexes.
		_ = v.RegisterValidation("term_color", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if hexColor.MatchString(value) {
				return true
			}
			n, err := strconv.Atoi(value)
			return err == nil && n >= 0 && n <= 255
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
