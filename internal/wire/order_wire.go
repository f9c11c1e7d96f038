package wire

import (
	"stempede-store/internal/adaptor"
	"stempede-store/internal/data/entity"
	"stempede-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	log *zap.Logger,
) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// Customers only see their own orders; the service checks ownership.
		r.Get("/{id}", orderHandler.GetOrderByID)

		// Staff routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleStaff, entity.RoleManager))

			r.Get("/", orderHandler.ListOrders)
			r.Get("/paged", orderHandler.ListOrdersPaged)
			r.Get("/{id}/delivery-statuses", orderHandler.GetDeliveryStatuses)
			r.Put("/{id}/delivery-status", orderHandler.UpdateDeliveryStatus)
		})
	})
}
