package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RentTypes lists the accepted values of the rent_type tag
var RentTypes = []string{"fixed", "hour", "day", "km"}

var (
	validate *validator.Validate
	once     sync.Once
)

// Get returns the shared validator with custom tags registered
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()

		// Report JSON field names instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("rent_type", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for _, rt := range RentTypes {
				if value == rt {
					return true
				}
			}
			return false
		})
	})
	return validate
}

// ValidateStruct validates a struct and converts validator errors into a ValidationError
func ValidateStruct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}
