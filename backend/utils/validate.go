package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags on a request DTO and returns a
// field -> message map, nil when the struct is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "oneof":
			out[field] = fmt.Sprintf("must be one of: %s", fe.Param())
		case "min":
			out[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("must be at most %s", fe.Param())
		default:
			out[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return out
}
