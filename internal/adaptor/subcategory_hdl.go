package adaptor

import (
	"encoding/json"
	"net/http"

	"stempede-store/internal/dto/request"
	"stempede-store/internal/usecase"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

type SubcategoryHandler struct {
	service usecase.SubcategoryService
	log     *zap.Logger
}

func NewSubcategoryHandler(service usecase.SubcategoryService, log *zap.Logger) *SubcategoryHandler {
	return &SubcategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "subcategory")),
	}
}

// ListSubcategories handles GET /api/subcategories
func (h *SubcategoryHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.service.List(r.Context()), http.StatusOK)
}

// GetSubcategory handles GET /api/subcategories/{id}
func (h *SubcategoryHandler) GetSubcategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subcategory ID", nil)
		return
	}

	writeResult(w, h.service.GetByID(r.Context(), id), http.StatusOK)
}

// CreateSubcategory handles POST /api/subcategories
func (h *SubcategoryHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSubcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	writeResult(w, h.service.Create(r.Context(), &req), http.StatusCreated)
}

// UpdateSubcategory handles PUT /api/subcategories/{id}
func (h *SubcategoryHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subcategory ID", nil)
		return
	}

	var req request.CreateSubcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	writeResult(w, h.service.Update(r.Context(), id, &req), http.StatusOK)
}

// DeleteSubcategory handles DELETE /api/subcategories/{id}
func (h *SubcategoryHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subcategory ID", nil)
		return
	}

	writeResult(w, h.service.Delete(r.Context(), id), http.StatusOK)
}
