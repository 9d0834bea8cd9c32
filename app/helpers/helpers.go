package helpers

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

func GenerateSlug(s string) string {
	return slug.Make(s)
}

// FormatValidationErrors flattens validator errors into the field -> message
// map returned in 422 responses. Field names come from the struct's form tag,
// so keys match what the client submitted.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := toSnakeCase(err.Field())
		label := labelize(field)
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("The %s field is required.", label)
		case "email":
			errorMessages[field] = fmt.Sprintf("The %s must be a valid email address.", label)
		case "oneof":
			errorMessages[field] = fmt.Sprintf("The selected %s is invalid.", label)
		case "min":
			errorMessages[field] = fmt.Sprintf("The %s must be at least %s.", label, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("The %s may not be greater than %s.", label, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("The %s field is invalid.", label)
		}
	}
	return errorMessages
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func labelize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func PasswordCompare(hashPass string, password []byte) bool {
	if err := bcrypt.CompareHashAndPassword([]byte(hashPass), password); err != nil {
		return false
	}
	return true
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return ""
	}
	return string(bytes)
}
