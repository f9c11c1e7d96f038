package wire

import (
	"stempede-store/internal/adaptor"
	"stempede-store/internal/data/entity"
	"stempede-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSubcategory(
	r chi.Router,
	subcategoryHandler *adaptor.SubcategoryHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/subcategories", subcategoryHandler.ListSubcategories)
	r.Get("/api/subcategories/{id}", subcategoryHandler.GetSubcategory)

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.RequireRole(log, entity.RoleStaff, entity.RoleManager))

		r.Post("/api/subcategories", subcategoryHandler.CreateSubcategory)
		r.Put("/api/subcategories/{id}", subcategoryHandler.UpdateSubcategory)
		r.Delete("/api/subcategories/{id}", subcategoryHandler.DeleteSubcategory)
	})
}
