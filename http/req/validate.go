package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator reporting fields by their payload names.
func newValidator() validator {
	v := v10.New(v10.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	return validator{v}
}

// fieldName names field by its "json" tag, falling back to its "schema" tag.
func fieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks structPtr against its "validate" struct tags,
// collecting every failure into ValidationErrors.
func (v validator) validate(structPtr any) error {
	var fails v10.ValidationErrors
	if err := v.valid.Struct(structPtr); !errors.As(err, &fails) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fails))
	for _, fe := range fails {
		// Drop the struct name leading the namespace.
		_, field, ok := strings.Cut(fe.Namespace(), ".")
		if !ok {
			field = fe.Field()
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		errs = append(errs, ValidationError{Field: field, Got: fe.Value(), Rule: rule})
	}

	return errs
}
