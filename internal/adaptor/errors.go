package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusForError maps the stable phrases in service errors to an HTTP status.
// Order matters: "invalid credentials" must win over "invalid".
func statusForError(err error) int {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "validation failed"):
		return http.StatusBadRequest
	case strings.Contains(msg, "invalid credentials"),
		strings.Contains(msg, "unauthorized"):
		return http.StatusUnauthorized
	case strings.Contains(msg, "forbidden"),
		strings.Contains(msg, "your own"):
		return http.StatusForbidden
	case strings.Contains(msg, "already"),
		strings.Contains(msg, "conflict"),
		strings.Contains(msg, "unavailable"),
		strings.Contains(msg, "cannot"):
		return http.StatusConflict
	case strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError writes the error envelope for a failed service call.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status := statusForError(err)

	if status == http.StatusInternalServerError {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed",
		zap.Error(err),
		zap.String("operation", operation),
		zap.Int("status", status))

	utils.ResponseError(w, status, err.Error(), nil)
}

// ==================== HELPER METHODS ====================

// decodeAndValidate reads a JSON body into dst and runs the validator tags.
// It writes the 400 response itself and reports false when the request is unusable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func currentRole(r *http.Request) entity.UserRole {
	role, _ := utils.GetRoleFromContext(r.Context())
	return entity.UserRole(role)
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
