package wire

import (
	"stempede-store/internal/adaptor"
	"stempede-store/pkg/middleware"
	"stempede-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public, rate limited per client address
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit, log))

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})
}
