package exceptions

import (
	"photodoc-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validationMessages = map[string]string{
	"required": "is required",
	"min":      "is too short",
	"max":      "is too long",
	"base64":   "must be a valid base64 string",
	"oneof":    "has an unsupported value",
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		customMessage, ok := validationMessages[firstErr.Tag()]
		if !ok {
			customMessage = "is invalid"
		}
		return fieldName + " " + customMessage
	}
	return constvars.ErrClientCannotProcessRequest
}
