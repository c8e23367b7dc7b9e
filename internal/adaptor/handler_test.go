package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTicketService struct {
	usecase.TicketService
	mock.Mock
}

func (m *mockTicketService) CreateTicket(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketDetailResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TicketDetailResponse), args.Error(1)
}

func (m *mockTicketService) GetTicketByID(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID string) (*response.TicketDetailResponse, error) {
	args := m.Called(ctx, userID, role, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TicketDetailResponse), args.Error(1)
}

type mockMovieService struct {
	usecase.MovieService
	mock.Mock
}

func (m *mockMovieService) GetMovies(ctx context.Context, q *usecase.MovieQuery, includeHidden bool) (*response.PaginatedResponse[response.MovieResponse], error) {
	args := m.Called(ctx, q, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.MovieResponse]), args.Error(1)
}

type mockAuthService struct {
	usecase.AuthService
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req *request.LoginRequest, meta usecase.SessionMeta) (*response.AuthResponse, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AuthResponse), args.Error(1)
}

type mockSeedService struct {
	mock.Mock
}

func (m *mockSeedService) Seed(ctx context.Context, secret string) (*usecase.SeedResult, error) {
	args := m.Called(ctx, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SeedResult), args.Error(1)
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func withUser(r *http.Request, userID uuid.UUID, role entity.UserRole) *http.Request {
	return r.WithContext(utils.SetUserContext(r.Context(), userID, string(role)))
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	userID := uuid.New()
	valid := request.CreateTicketRequest{ShowtimeID: uuid.NewString(), SeatID: uuid.NewString()}

	tests := []struct {
		name       string
		body       any
		auth       bool
		setup      func(m *mockTicketService)
		wantStatus int
	}{
		{
			name:       "requires authentication",
			body:       valid,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejects a body that fails validation",
			body:       map[string]string{"showtime_id": "x"},
			auth:       true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "seat already booked is a conflict",
			body: valid,
			auth: true,
			setup: func(m *mockTicketService) {
				m.On("CreateTicket", mock.Anything, userID, &valid).
					Return(nil, errors.New("seat C4 already booked for this showtime"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "reserves the seat",
			body: valid,
			auth: true,
			setup: func(m *mockTicketService) {
				m.On("CreateTicket", mock.Anything, userID, &valid).
					Return(&response.TicketDetailResponse{SeatNumber: "C4"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockTicketService)
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := NewTicketHandler(svc, nil, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/tickets", jsonBody(t, tt.body))
			if tt.auth {
				req = withUser(req, userID, entity.RoleUser)
			}
			rec := httptest.NewRecorder()
			h.CreateTicket(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantStatus == http.StatusCreated, body.Status)
			svc.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_GetTicketByID_UsesRouteParamAndRole(t *testing.T) {
	userID := uuid.New()
	ticketID := uuid.NewString()

	svc := new(mockTicketService)
	svc.On("GetTicketByID", mock.Anything, userID, entity.RoleStaff, ticketID).
		Return(&response.TicketDetailResponse{}, nil)

	r := chi.NewRouter()
	r.Get("/api/tickets/{id}", NewTicketHandler(svc, nil, zap.NewNop()).GetTicketByID)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/tickets/"+ticketID, nil), userID, entity.RoleStaff)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestMovieHandler_GetMovies_ParsesFilters(t *testing.T) {
	svc := new(mockMovieService)
	svc.On("GetMovies", mock.Anything, mock.MatchedBy(func(q *usecase.MovieQuery) bool {
		return q.Page == 2 && q.PerPage == 5 &&
			q.Genre != nil && *q.Genre == "Drama" &&
			q.Year != nil && *q.Year == 2016 &&
			q.Status == nil && q.Search == nil
	}), false).Return(&response.PaginatedResponse[response.MovieResponse]{}, nil)

	r := chi.NewRouter()
	r.Get("/api/movies", NewMovieHandler(svc, zap.NewNop()).GetMovies)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies?genre=Drama&year=2016&page=2&per_page=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_Login(t *testing.T) {
	login := request.LoginRequest{Username: "ana", Password: "secret123"}

	t.Run("bad credentials are unauthorized", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, &login, mock.MatchedBy(func(meta usecase.SessionMeta) bool {
			return meta.UserAgent == "test-agent" && meta.IPAddress == "10.0.0.7"
		})).Return(nil, errors.New("invalid credentials"))

		req := httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(t, login))
		req.Header.Set("User-Agent", "test-agent")
		req.RemoteAddr = "10.0.0.7:52100"
		rec := httptest.NewRecorder()
		NewAuthHandler(svc, zap.NewNop()).Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Message)
		svc.AssertExpectations(t)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{"))
		NewAuthHandler(new(mockAuthService), zap.NewNop()).Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSeedHandler(t *testing.T) {
	t.Run("forwards the secret header", func(t *testing.T) {
		svc := new(mockSeedService)
		svc.On("Seed", mock.Anything, "letmein").Return(&usecase.SeedResult{Movies: 3}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/seed", nil)
		req.Header.Set(SeedSecretHeader, "letmein")
		rec := httptest.NewRecorder()
		NewSeedHandler(svc, zap.NewNop()).Seed(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		svc := new(mockSeedService)
		svc.On("Seed", mock.Anything, "").Return(nil, errors.New("unauthorized: invalid seed secret"))

		rec := httptest.NewRecorder()
		NewSeedHandler(svc, zap.NewNop()).Seed(rec, httptest.NewRequest(http.MethodPost, "/api/seed", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("already seeded", func(t *testing.T) {
		svc := new(mockSeedService)
		svc.On("Seed", mock.Anything, "s").Return(&usecase.SeedResult{Skipped: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/seed", nil)
		req.Header.Set(SeedSecretHeader, "s")
		rec := httptest.NewRecorder()
		NewSeedHandler(svc, zap.NewNop()).Seed(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
