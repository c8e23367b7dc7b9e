package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PersonHandler serves directors and cast members.
type PersonHandler struct {
	directors usecase.DirectorService
	cast      usecase.CastMemberService
	log       *zap.Logger
}

func NewPersonHandler(directors usecase.DirectorService, cast usecase.CastMemberService, log *zap.Logger) *PersonHandler {
	return &PersonHandler{
		directors: directors,
		cast:      cast,
		log:       log.With(zap.String("handler", "person")),
	}
}

// ==================== DIRECTORS ====================

// GetDirectors handles GET /api/directors
func (h *PersonHandler) GetDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.directors.GetDirectors(r.Context(), searchQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get directors")
		return
	}

	utils.ResponseSuccess(w, "success", directors)
}

// GetDirectorByID handles GET /api/directors/{id}
func (h *PersonHandler) GetDirectorByID(w http.ResponseWriter, r *http.Request) {
	director, err := h.directors.GetDirectorByID(r.Context(), chi.URLParam(r, "id"), false)
	if err != nil {
		handleServiceError(w, h.log, err, "get director")
		return
	}

	utils.ResponseSuccess(w, "success", director)
}

// CreateDirector handles POST /api/admin/directors
func (h *PersonHandler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var req request.DirectorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	director, err := h.directors.CreateDirector(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create director")
		return
	}

	utils.ResponseCreated(w, "Director created", director)
}

// UpdateDirector handles PUT /api/admin/directors/{id}
func (h *PersonHandler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	var req request.DirectorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	director, err := h.directors.UpdateDirector(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update director")
		return
	}

	utils.ResponseSuccess(w, "Director updated", director)
}

// DeleteDirector handles DELETE /api/admin/directors/{id}
func (h *PersonHandler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	if err := h.directors.DeleteDirector(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete director")
		return
	}

	utils.ResponseSuccess(w, "Director deleted", nil)
}

// ==================== CAST MEMBERS ====================

// GetCastMembers handles GET /api/cast-members
func (h *PersonHandler) GetCastMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.cast.GetCastMembers(r.Context(), searchQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get cast members")
		return
	}

	utils.ResponseSuccess(w, "success", members)
}

// GetCastMemberByID handles GET /api/cast-members/{id}
func (h *PersonHandler) GetCastMemberByID(w http.ResponseWriter, r *http.Request) {
	member, err := h.cast.GetCastMemberByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get cast member")
		return
	}

	utils.ResponseSuccess(w, "success", member)
}

// CreateCastMember handles POST /api/admin/cast-members
func (h *PersonHandler) CreateCastMember(w http.ResponseWriter, r *http.Request) {
	var req request.CastMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	member, err := h.cast.CreateCastMember(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create cast member")
		return
	}

	utils.ResponseCreated(w, "Cast member created", member)
}

// UpdateCastMember handles PUT /api/admin/cast-members/{id}
func (h *PersonHandler) UpdateCastMember(w http.ResponseWriter, r *http.Request) {
	var req request.CastMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	member, err := h.cast.UpdateCastMember(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cast member")
		return
	}

	utils.ResponseSuccess(w, "Cast member updated", member)
}

// DeleteCastMember handles DELETE /api/admin/cast-members/{id}
func (h *PersonHandler) DeleteCastMember(w http.ResponseWriter, r *http.Request) {
	if err := h.cast.DeleteCastMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete cast member")
		return
	}

	utils.ResponseSuccess(w, "Cast member deleted", nil)
}

func searchQuery(r *http.Request) *usecase.SearchQuery {
	return &usecase.SearchQuery{
		PaginatedRequest: paginationFromQuery(r),
		Search:           utils.OptionalString(r.URL.Query().Get("search")),
	}
}
