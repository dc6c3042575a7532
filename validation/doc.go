// Package validation turns rejected input into *errors.ValidationError.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Either way the resulting
// failure carries one message per violation, grouped by field in the order
// the fields were checked.
//
// # Struct Tag Validation
//
//	type CreateUserCmd struct {
//	    Name  string `json:"name" validate:"required,min=2"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	if err := validation.Validate(cmd); err != nil {
//	    return err // 400 via the error handler
//	}
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).MaxLength("name", name, 64)
//	return v.Validate() // nil when every check passed
package validation
