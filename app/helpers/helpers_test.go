package helpers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"organic-Turmeric", "organic-turmeric"},
		{"Spring Sale", "spring-sale"},
		{"natural-Black Pepper", "natural-black-pepper"},
		{"  Trimmed  ", "trimmed"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, GenerateSlug(tt.in))
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type form struct {
		Name       string `form:"name" validate:"required"`
		Email      string `form:"email" validate:"omitempty,email"`
		Type       string `form:"type" validate:"omitempty,oneof=natural organic na"`
		AppliedFor string `form:"applied_for" validate:"max=3"`
	}

	v := NewValidator()
	err := v.Struct(&form{Email: "nope", Type: "mineral", AppliedFor: "too long"})
	require.Error(t, err)

	messages := FormatValidationErrors(err.(validator.ValidationErrors))
	require.Equal(t, "The name field is required.", messages["name"])
	require.Equal(t, "The email must be a valid email address.", messages["email"])
	require.Equal(t, "The selected type is invalid.", messages["type"])
	require.Equal(t, "The applied for may not be greater than 3.", messages["applied_for"])
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := HashPassword("secret123")
	require.NotEmpty(t, hash)
	require.True(t, PasswordCompare(hash, []byte("secret123")))
	require.False(t, PasswordCompare(hash, []byte("wrong")))
}
