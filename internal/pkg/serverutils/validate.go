package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"notebookrag/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a DTO and folds failures
// into a single validation error listing every offending field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Validation("invalid request: %v", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("field %s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return apperror.Validation("invalid request: %s", strings.Join(messages, "; "))
}
