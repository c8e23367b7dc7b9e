package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildSeats(t *testing.T) {
	screenID := uuid.New()
	seats := BuildSeats(screenID, 2, 3)

	var labels []string
	ids := make(map[uuid.UUID]bool)
	for _, seat := range seats {
		labels = append(labels, seat.SeatNumber)
		ids[seat.ID] = true

		assert.Equal(t, screenID, seat.ScreenID)
		assert.True(t, seat.IsAvailable)
	}

	want := []string{"A1", "A2", "A3", "B1", "B2", "B3"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("seat labels mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, ids, 6, "every seat gets its own id")
	assert.Equal(t, "B", seats[4].SeatRow)
	assert.Equal(t, 2, seats[4].SeatCol)
}
