package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TicketHandler serves tickets and the receipts that pay for them.
type TicketHandler struct {
	tickets  usecase.TicketService
	receipts usecase.ReceiptService
	log      *zap.Logger
}

func NewTicketHandler(tickets usecase.TicketService, receipts usecase.ReceiptService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		tickets:  tickets,
		receipts: receipts,
		log:      log.With(zap.String("handler", "ticket")),
	}
}

// ==================== TICKETS ====================

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateTicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.tickets.CreateTicket(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create ticket")
		return
	}

	utils.ResponseCreated(w, "Seat reserved", ticket)
}

// GetUserTickets handles GET /api/user/tickets
func (h *TicketHandler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	tickets, err := h.tickets.GetUserTickets(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get user tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// GetTicketByID handles GET /api/tickets/{id} (owner or staff)
func (h *TicketHandler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ticket, err := h.tickets.GetTicketByID(r.Context(), userID, currentRole(r), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// CancelTicket handles DELETE /api/tickets/{id}
func (h *TicketHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.tickets.CancelTicket(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "cancel ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket canceled", nil)
}

// GetAllTickets handles GET /api/admin/tickets?status=&showtime_id=
func (h *TicketHandler) GetAllTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &usecase.TicketQuery{
		PaginatedRequest: paginationFromQuery(r),
		Status:           utils.OptionalString(query.Get("status")),
		ShowtimeID:       utils.OptionalString(query.Get("showtime_id")),
	}

	tickets, err := h.tickets.GetAllTickets(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "get tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// UpdateTicketStatus handles PATCH /api/admin/tickets/{id}/status
func (h *TicketHandler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTicketStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.tickets.UpdateTicketStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update ticket status")
		return
	}

	utils.ResponseSuccess(w, "Ticket status updated", ticket)
}

// ==================== RECEIPTS ====================

// CreateReceipt handles POST /api/receipts
func (h *TicketHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReceiptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	receipt, err := h.receipts.CreateReceipt(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create receipt")
		return
	}

	utils.ResponseCreated(w, "Payment recorded", receipt)
}

// GetUserReceipts handles GET /api/user/receipts
func (h *TicketHandler) GetUserReceipts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	receipts, err := h.receipts.GetUserReceipts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get user receipts")
		return
	}

	utils.ResponseSuccess(w, "success", receipts)
}

// GetReceiptByID handles GET /api/receipts/{id} (owner or staff)
func (h *TicketHandler) GetReceiptByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	receipt, err := h.receipts.GetReceiptByID(r.Context(), userID, currentRole(r), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get receipt")
		return
	}

	utils.ResponseSuccess(w, "success", receipt)
}

// DeleteReceipt handles DELETE /api/receipts/{id}
func (h *TicketHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.receipts.DeleteReceipt(r.Context(), userID, currentRole(r), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete receipt")
		return
	}

	utils.ResponseSuccess(w, "Receipt deleted, tickets returned to reserved", nil)
}
