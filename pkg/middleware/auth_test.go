package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSessionRepo struct {
	repository.SessionRepository
	mock.Mock
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

type mockUserRepo struct {
	repository.UserRepository
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// echoIdentity writes back what the auth middleware stored in the context.
func echoIdentity(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	token, _ := utils.GetTokenFromContext(r.Context())
	w.Header().Set("X-User", userID.String())
	w.Header().Set("X-Role", role)
	w.Header().Set("X-Token", token)
	w.WriteHeader(http.StatusOK)
}

func TestAuthSession(t *testing.T) {
	token := uuid.New()
	userID := uuid.New()
	session := &entity.Session{UserID: userID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name       string
		header     string
		setup      func(s *mockSessionRepo, u *mockUserRepo)
		wantStatus int
		wantRole   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + token.String(),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token is not a uuid",
			header:     "Bearer abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "unknown or expired session",
			header: "Bearer " + token.String(),
			setup: func(s *mockSessionRepo, u *mockUserRepo) {
				s.On("FindValidSession", mock.Anything, token).Return(nil, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "session lookup fails",
			header: "Bearer " + token.String(),
			setup: func(s *mockSessionRepo, u *mockUserRepo) {
				s.On("FindValidSession", mock.Anything, token).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "deactivated account",
			header: "Bearer " + token.String(),
			setup: func(s *mockSessionRepo, u *mockUserRepo) {
				s.On("FindValidSession", mock.Anything, token).Return(session, nil)
				u.On("FindByID", mock.Anything, userID).
					Return(&entity.User{Base: entity.Base{ID: userID}, Role: entity.RoleUser, IsActive: false}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid session carries the stored role",
			header: "bearer " + token.String(),
			setup: func(s *mockSessionRepo, u *mockUserRepo) {
				s.On("FindValidSession", mock.Anything, token).Return(session, nil)
				u.On("FindByID", mock.Anything, userID).
					Return(&entity.User{Base: entity.Base{ID: userID}, Role: entity.RoleStaff, IsActive: true}, nil)
			},
			wantStatus: http.StatusOK,
			wantRole:   "Staff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(mockSessionRepo)
			users := new(mockUserRepo)
			if tt.setup != nil {
				tt.setup(sessions, users)
			}

			handler := AuthSession(sessions, users, zap.NewNop())(http.HandlerFunc(echoIdentity))

			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Header().Get("X-User"))
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
				assert.Equal(t, token.String(), rec.Header().Get("X-Token"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		role       entity.UserRole
		guard      func(*zap.Logger) func(http.Handler) http.Handler
		wantStatus int
	}{
		{"admin passes admin guard", entity.RoleAdmin, Admin, http.StatusNoContent},
		{"staff blocked by admin guard", entity.RoleStaff, Admin, http.StatusForbidden},
		{"staff passes staff guard", entity.RoleStaff, Staff, http.StatusNoContent},
		{"admin passes staff guard", entity.RoleAdmin, Staff, http.StatusNoContent},
		{"user blocked by staff guard", entity.RoleUser, Staff, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), string(tt.role)))
			rec := httptest.NewRecorder()

			tt.guard(zap.NewNop())(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("no identity in context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Staff(zap.NewNop())(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
