package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseError converts validator errors into a field -> message map keyed by
// the lower-cased field name.
func ParseError(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err != nil {
			out["error"] = err.Error()
		}
		return out
	}
	for _, fe := range ve {
		out[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be less than or equal to %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of the following: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", fe.Field())
	case "unique":
		return fmt.Sprintf("The %s field must not contain duplicates.", fe.Field())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", fe.Field(), fe.Tag())
	}
}
