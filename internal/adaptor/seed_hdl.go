package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// SeedSecretHeader carries the shared secret that unlocks POST /api/seed.
const SeedSecretHeader = "X-Seed-Secret"

type SeedHandler struct {
	service usecase.SeedService
	log     *zap.Logger
}

func NewSeedHandler(service usecase.SeedService, log *zap.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		log:     log.With(zap.String("handler", "seed")),
	}
}

// Seed handles POST /api/seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Seed(r.Context(), r.Header.Get(SeedSecretHeader))
	if err != nil {
		handleServiceError(w, h.log, err, "seed")
		return
	}

	if result.Skipped {
		utils.ResponseSuccess(w, "Catalog already populated, nothing seeded", result)
		return
	}
	utils.ResponseCreated(w, "Sample data seeded", result)
}
