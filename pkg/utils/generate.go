package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== SESSION TOKEN ====================

// GenerateSessionToken returns the opaque bearer token stored in sessions.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== RECEIPT NUMBER ====================

// GenerateReceiptNumber formats RCPT-YYYYMMDD-HHMMSS-NNNN.
func GenerateReceiptNumber(now time.Time) string {
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("RCPT-%s-%s-%s", datePart, timePart, randomPart)
}

// SeatLabel turns a zero-based row index and one-based column into "A1", "B12", "AA3".
func SeatLabel(row, col int) string {
	return RowLabel(row) + fmt.Sprintf("%d", col)
}

// RowLabel turns a zero-based row index into spreadsheet-style letters.
func RowLabel(row int) string {
	label := ""
	for n := row + 1; n > 0; n = (n - 1) / 26 {
		label = string(rune('A'+(n-1)%26)) + label
	}
	return label
}
