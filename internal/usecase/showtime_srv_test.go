package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClockMinutes(t *testing.T) {
	got, err := ClockMinutes("13:45")
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, got)

	_, err = ClockMinutes("25:00")
	assert.Error(t, err)

	_, err = ClockMinutes("1pm")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aLen, bStart, bLen int
		want                       bool
	}{
		{"disjoint before", 600, 90, 700, 120, false},
		{"back to back does not overlap", 600, 100, 700, 120, false},
		{"starts inside other", 600, 120, 700, 90, true},
		{"contains other", 600, 300, 700, 60, true},
		{"equal starts always overlap", 600, 0, 600, 0, true},
		{"other ends exactly at start", 700, 60, 600, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aLen, tt.bStart, tt.bLen))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bLen, tt.aStart, tt.aLen), "overlap must be symmetric")
		})
	}
}

func TestFindConflict(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	slots := []*entity.ShowtimeSlot{
		{ID: self, ShowTime: "13:00", DurationMinutes: 120},
		{ID: other, ShowTime: "16:00", DurationMinutes: 90},
	}

	t.Run("excluded slot is ignored", func(t *testing.T) {
		conflict, err := FindConflict(slots, 13*60+30, 120, self)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("overlap with another showing", func(t *testing.T) {
		conflict, err := FindConflict(slots, 15*60, 120, uuid.Nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, other, conflict.ID)
	})

	t.Run("free gap", func(t *testing.T) {
		conflict, err := FindConflict(slots, 18*60, 60, uuid.Nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("late showing from the previous day runs past midnight", func(t *testing.T) {
		late := []*entity.ShowtimeSlot{
			{ID: other, ShowTime: "23:00", DurationMinutes: 180, OffsetMinutes: -minutesPerDay},
		}
		conflict, err := FindConflict(late, 30, 90, uuid.Nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, other, conflict.ID)

		conflict, err = FindConflict(late, 2*60, 90, uuid.Nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("new late showing runs into the next day", func(t *testing.T) {
		early := []*entity.ShowtimeSlot{
			{ID: other, ShowTime: "00:30", DurationMinutes: 90, OffsetMinutes: minutesPerDay},
		}
		conflict, err := FindConflict(early, 23*60, 180, uuid.Nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, other, conflict.ID)
	})
}

func TestShowtimeService_CreateShowtime(t *testing.T) {
	movieID := uuid.New()
	screenID := uuid.New()
	showDate := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	newRepo := func(slots []*entity.ShowtimeSlot) (*repository.Repository, *mockShowtimeRepo) {
		movies := new(mockMovieRepo)
		movies.On("FindByID", mock.Anything, movieID).
			Return(&entity.Movie{Base: entity.Base{ID: movieID}, Title: "Dune", DurationMinutes: 150}, nil)

		screens := new(mockScreenRepo)
		screens.On("FindByID", mock.Anything, screenID).
			Return(&entity.Screen{Base: entity.Base{ID: screenID}, Name: "Hall 1"}, nil)

		showtimes := new(mockShowtimeRepo)
		showtimes.On("FindSlots", mock.Anything, screenID, showDate).Return(slots, nil)
		showtimes.On("FindSlots", mock.Anything, screenID, showDate.AddDate(0, 0, -1)).Return(nil, nil)
		showtimes.On("FindSlots", mock.Anything, screenID, showDate.AddDate(0, 0, 1)).Return(nil, nil)

		return &repository.Repository{Movie: movies, Screen: screens, Showtime: showtimes}, showtimes
	}

	req := &request.ShowtimeRequest{
		MovieID:  movieID.String(),
		ScreenID: screenID.String(),
		ShowDate: "2026-10-20",
		ShowTime: "18:00",
		Price:    12.5,
	}

	t.Run("rejects an overlapping showing", func(t *testing.T) {
		repo, showtimes := newRepo([]*entity.ShowtimeSlot{
			{ID: uuid.New(), ShowTime: "16:00", DurationMinutes: 150},
		})

		svc := NewShowtimeService(repo, zap.NewNop())
		_, err := svc.CreateShowtime(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "showtime conflict")
		showtimes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a showing still blocked by last night's late show", func(t *testing.T) {
		repo, showtimes := newRepo(nil)
		showtimes.ExpectedCalls = nil
		showtimes.On("FindSlots", mock.Anything, screenID, showDate).Return(nil, nil)
		showtimes.On("FindSlots", mock.Anything, screenID, showDate.AddDate(0, 0, -1)).
			Return([]*entity.ShowtimeSlot{{ID: uuid.New(), ShowTime: "23:00", DurationMinutes: 180}}, nil)
		showtimes.On("FindSlots", mock.Anything, screenID, showDate.AddDate(0, 0, 1)).Return(nil, nil)

		early := *req
		early.ShowTime = "00:30"
		svc := NewShowtimeService(repo, zap.NewNop())
		_, err := svc.CreateShowtime(context.Background(), &early)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "showtime conflict")
		showtimes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates with default format", func(t *testing.T) {
		repo, showtimes := newRepo([]*entity.ShowtimeSlot{
			{ID: uuid.New(), ShowTime: "13:00", DurationMinutes: 150},
		})
		showtimes.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Showtime) bool {
			return s.Format == "2D" && s.ShowTime == "18:00" && s.ScreenID == screenID
		})).Return(nil)

		svc := NewShowtimeService(repo, zap.NewNop())
		resp, err := svc.CreateShowtime(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "2D", resp.Format)
		showtimes.AssertExpectations(t)
	})
}
