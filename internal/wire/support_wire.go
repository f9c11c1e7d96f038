package wire

import (
	"stempede-store/internal/adaptor"
	"stempede-store/internal/data/entity"
	"stempede-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSupportRequest(
	r chi.Router,
	supportHandler *adaptor.SupportRequestHandler,
	log *zap.Logger,
) {
	r.Route("/api/support-requests", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Get("/mine", supportHandler.ListMine)
		r.Put("/{id}/status", supportHandler.UpdateStatus)

		r.With(middleware.RequireRole(log, entity.RoleStaff, entity.RoleManager)).
			Get("/", supportHandler.ListAll)
	})
}
