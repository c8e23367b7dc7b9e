package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ModerationHandler serves content reports and the staff dashboard stats.
type ModerationHandler struct {
	service usecase.ModerationService
	stats   usecase.StatsService
	log     *zap.Logger
}

func NewModerationHandler(service usecase.ModerationService, stats usecase.StatsService, log *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		service: service,
		stats:   stats,
		log:     log.With(zap.String("handler", "moderation")),
	}
}

// ReportContent handles POST /api/reports
func (h *ModerationHandler) ReportContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.service.ReportContent(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "report content")
		return
	}

	utils.ResponseCreated(w, "Report submitted", report)
}

// WithdrawReport handles DELETE /api/reports/{id}
func (h *ModerationHandler) WithdrawReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.WithdrawReport(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "withdraw report")
		return
	}

	utils.ResponseSuccess(w, "Report withdrawn", nil)
}

// GetReports handles GET /api/admin/reports?status=&content_type=
func (h *ModerationHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &usecase.ReportQuery{
		PaginatedRequest: paginationFromQuery(r),
		Status:           utils.OptionalString(query.Get("status")),
		ContentType:      utils.OptionalString(query.Get("content_type")),
	}

	reports, err := h.service.GetReports(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "get reports")
		return
	}

	utils.ResponseSuccess(w, "success", reports)
}

// DismissReport handles PATCH /api/admin/reports/{id}/dismiss
func (h *ModerationHandler) DismissReport(w http.ResponseWriter, r *http.Request) {
	moderatorID, ok := currentUser(w, r)
	if !ok {
		return
	}

	report, err := h.service.DismissReport(r.Context(), moderatorID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "dismiss report")
		return
	}

	utils.ResponseSuccess(w, "Report dismissed", report)
}

// RemoveReportedContent handles DELETE /api/admin/reports/{id}/content
func (h *ModerationHandler) RemoveReportedContent(w http.ResponseWriter, r *http.Request) {
	moderatorID, ok := currentUser(w, r)
	if !ok {
		return
	}

	report, err := h.service.RemoveReportedContent(r.Context(), moderatorID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "remove reported content")
		return
	}

	utils.ResponseSuccess(w, "Content removed", report)
}

// GetStats handles GET /api/admin/stats
func (h *ModerationHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
