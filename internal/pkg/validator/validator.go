package validator

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FieldErrors flattens validation errors into field -> failed tag. Returns nil for other errors.
func FieldErrors(err error) map[string]interface{} {
	var ve validator.ValidationErrors
	if !stderrors.As(err, &ve) {
		return nil
	}
	fields := make(map[string]interface{}, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
