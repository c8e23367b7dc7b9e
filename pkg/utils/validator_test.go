package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Theme  string `json:"theme" validate:"omitempty,oneof=light dark system"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleRequest{Email: "a@b.co", Rating: 3}))

	got := ValidateStruct(&sampleRequest{Email: "nope", Rating: 9, Theme: "neon"})
	want := map[string]string{
		"Email":  "Invalid email format",
		"Rating": "Maximum value is 5",
		"Theme":  "Must be one of: light, dark, system",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("validation errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"Rating": "Maximum value is 5",
		"Email":  "Invalid email format",
	})
	assert.Equal(t, "Email: Invalid email format; Rating: Maximum value is 5", got)
}
