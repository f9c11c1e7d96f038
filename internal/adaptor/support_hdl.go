package adaptor

import (
	"encoding/json"
	"net/http"

	"stempede-store/internal/dto/request"
	"stempede-store/internal/usecase"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

type SupportRequestHandler struct {
	service usecase.SupportRequestService
	log     *zap.Logger
}

func NewSupportRequestHandler(service usecase.SupportRequestService, log *zap.Logger) *SupportRequestHandler {
	return &SupportRequestHandler{
		service: service,
		log:     log.With(zap.String("handler", "support_request")),
	}
}

// ListAll handles GET /api/support-requests (staff)
func (h *SupportRequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.service.ListAll(r.Context()), http.StatusOK)
}

// ListMine handles GET /api/support-requests/mine (protected)
func (h *SupportRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	writeResult(w, h.service.ListByUser(r.Context(), username), http.StatusOK)
}

// UpdateStatus handles PUT /api/support-requests/{id}/status (protected)
func (h *SupportRequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	supportID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid support request ID", nil)
		return
	}

	var req request.UpdateSupportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	writeResult(w, h.service.UpdateStatus(r.Context(), supportID, &req, username), http.StatusOK)
}
