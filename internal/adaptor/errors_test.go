package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New("movie 42 not found"), http.StatusNotFound},
		{errors.New("validation failed: Rating: Maximum value is 5"), http.StatusBadRequest},
		{errors.New("invalid credentials"), http.StatusUnauthorized},
		{errors.New("invalid credentials: current password does not match"), http.StatusUnauthorized},
		{errors.New("unauthorized: invalid seed secret"), http.StatusUnauthorized},
		{errors.New("forbidden: ticket belongs to another user"), http.StatusForbidden},
		{errors.New("cannot delete your own account"), http.StatusForbidden},
		{errors.New("seat C4 already booked for this showtime"), http.StatusConflict},
		{errors.New("showtime conflict: overlaps showing"), http.StatusConflict},
		{errors.New("seat C4 is unavailable"), http.StatusConflict},
		{errors.New("ticket cannot be canceled: only reserved tickets"), http.StatusConflict},
		{errors.New("invalid promotion code: X is inactive or expired"), http.StatusBadRequest},
		{errors.New("invalid seat: A1 is not on the showtime's screen"), http.StatusBadRequest},
		{fmt.Errorf("get movies: %w", errors.New("connection refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
