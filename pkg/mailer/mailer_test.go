package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type ticketLine struct {
	ShowDate, ShowTime, ScreenName, SeatNumber, Price string
}

func receiptData() map[string]any {
	return map[string]any{
		"Username":      "ana",
		"MovieTitle":    "Arrival <IMAX>",
		"ReceiptNumber": "RCPT-20260101-120000-0042",
		"Tickets": []ticketLine{
			{"2026-01-02", "19:30", "Screen 1", "C4", "12.50"},
			{"2026-01-02", "19:30", "Screen 1", "C5", "12.50"},
		},
		"Subtotal":      "25.00",
		"Discount":      "12.50",
		"TotalPrice":    "12.50",
		"PaymentMethod": "card",
	}
}

func TestRender_ReceiptTemplate(t *testing.T) {
	subject, plain, html, err := render("receipt.tmpl", receiptData())
	require.NoError(t, err)

	assert.Equal(t, "Your receipt RCPT-20260101-120000-0042", subject)
	assert.Contains(t, plain, "seat C4: 12.50")
	assert.Contains(t, plain, "seat C5: 12.50")
	assert.Contains(t, plain, "Total: 12.50 (card)")
	assert.Contains(t, html, "Arrival &lt;IMAX&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestLogMailer_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer(zap.New(core))

	require.NoError(t, m.Send("ana@example.com", "receipt.tmpl", receiptData()))

	entries := logs.FilterMessage("Email not sent, SMTP disabled").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ana@example.com", fields["to"])
	assert.Equal(t, "Your receipt RCPT-20260101-120000-0042", fields["subject"])
}
