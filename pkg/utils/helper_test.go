package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 3, ParseInt("3", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-4", 1))
}

func TestParseOptionalInt(t *testing.T) {
	assert.Nil(t, ParseOptionalInt(""))
	assert.Nil(t, ParseOptionalInt("20x"))

	got := ParseOptionalInt("2024")
	require.NotNil(t, got)
	assert.Equal(t, 2024, *got)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))

	got := OptionalString(" drama ")
	require.NotNil(t, got)
	assert.Equal(t, "drama", *got)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestSeatLabels(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 1, "A1"},
		{1, 12, "B12"},
		{25, 3, "Z3"},
		{26, 1, "AA1"},
		{27, 2, "AB2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeatLabel(tt.row, tt.col))
	}
}

func TestGenerateReceiptNumber(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 5, 7, 0, time.UTC)
	got := GenerateReceiptNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^RCPT-20261015-090507-\d{4}$`), got)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
