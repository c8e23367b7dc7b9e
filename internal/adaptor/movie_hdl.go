package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies (public, hidden movies excluded)
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	h.listMovies(w, r, false)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	h.getMovie(w, r, false)
}

// ==================== ADMIN ====================

// AdminGetMovies handles GET /api/admin/movies (hidden movies included)
func (h *MovieHandler) AdminGetMovies(w http.ResponseWriter, r *http.Request) {
	h.listMovies(w, r, true)
}

// AdminGetMovieByID handles GET /api/admin/movies/{id}
func (h *MovieHandler) AdminGetMovieByID(w http.ResponseWriter, r *http.Request) {
	h.getMovie(w, r, true)
}

// CreateMovie handles POST /api/admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated", movie)
}

// SetVisibility handles PATCH /api/admin/movies/{id}/visibility
func (h *MovieHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req request.VisibilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.SetVisibility(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set movie visibility")
		return
	}

	utils.ResponseSuccess(w, "Movie visibility updated", movie)
}

// ReplaceCast handles PUT /api/admin/movies/{id}/cast
func (h *MovieHandler) ReplaceCast(w http.ResponseWriter, r *http.Request) {
	var req request.MovieCastRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.ReplaceCast(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "replace cast")
		return
	}

	utils.ResponseSuccess(w, "Cast updated", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted", nil)
}

// ==================== HELPER METHODS ====================

func (h *MovieHandler) listMovies(w http.ResponseWriter, r *http.Request, includeHidden bool) {
	query := r.URL.Query()
	q := &usecase.MovieQuery{
		PaginatedRequest: paginationFromQuery(r),
		Genre:            utils.OptionalString(query.Get("genre")),
		Status:           utils.OptionalString(query.Get("status")),
		Year:             utils.ParseOptionalInt(query.Get("year")),
		DirectorID:       utils.OptionalString(query.Get("director_id")),
		Search:           utils.OptionalString(query.Get("search")),
	}

	movies, err := h.service.GetMovies(r.Context(), q, includeHidden)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

func (h *MovieHandler) getMovie(w http.ResponseWriter, r *http.Request, includeHidden bool) {
	movie, err := h.service.GetMovieByID(r.Context(), chi.URLParam(r, "id"), includeHidden)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}
