package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/jotter/internal/kdf"
	"github.com/idelchi/jotter/internal/pwgen"
)

// registerValidations adds the kdf and pwgen tags with readable messages,
// and reports fields by their flag names.
func registerValidations(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"kdf",
		validateKDF,
		"{0} must be one of "+strings.Join(kdf.Names(), ", "),
	); err != nil {
		return fmt.Errorf("registering kdf validation: %w", err)
	}

	if err := validator.RegisterValidationAndTranslation(
		"pwgen",
		validateStrategy,
		"{0} must be one of "+strings.Join(pwgen.Strategies(), ", "),
	); err != nil {
		return fmt.Errorf("registering pwgen validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateKDF checks that the field names a known key derivation function.
func validateKDF(fl validator.FieldLevel) bool {
	_, ok := kdf.Parse(fl.Field().String())

	return ok
}

// validateStrategy checks that the field names a known password generation strategy.
func validateStrategy(fl validator.FieldLevel) bool {
	_, ok := pwgen.ParseStrategy(fl.Field().String())

	return ok
}
