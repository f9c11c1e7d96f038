package adaptor

import (
	"encoding/json"
	"net/http"

	"stempede-store/internal/dto/request"
	"stempede-store/internal/usecase"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.service.ListAll(r.Context()), http.StatusOK)
}

// ListOrdersPaged handles GET /api/orders/paged?page=&per_page=
func (h *OrderHandler) ListOrdersPaged(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", utils.ValidationMessages(validationErrors))
		return
	}

	writeResult(w, h.service.ListPaged(r.Context(), req.Page, req.Limit()), http.StatusOK)
}

// GetOrderByID handles GET /api/orders/{id} (protected)
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	username, _ := utils.GetUsernameFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())

	writeResult(w, h.service.GetByID(r.Context(), orderID, username, role), http.StatusOK)
}

// GetDeliveryStatuses handles GET /api/orders/{id}/delivery-statuses
func (h *OrderHandler) GetDeliveryStatuses(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	writeResult(w, h.service.AvailableDeliveryStatuses(r.Context(), orderID), http.StatusOK)
}

// UpdateDeliveryStatus handles PUT /api/orders/{id}/delivery-status (staff)
func (h *OrderHandler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	var req request.UpdateDeliveryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", utils.ValidationMessages(validationErrors))
		return
	}

	writeResult(w, h.service.UpdateDeliveryStatus(r.Context(), orderID, req.DeliveryStatus), http.StatusOK)
}
