// Package validation provides input validation utilities.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used by the configuration layer; the programmatic Validator covers checks
// that tags cannot express.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    Name string `validate:"required"`
//	}
//	err := validation.Validate(settings)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name)
//	err := v.Error()
package validation
