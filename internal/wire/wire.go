// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"stempede-store/internal/adaptor"
	"stempede-store/internal/data/repository"
	"stempede-store/internal/metrics"
	"stempede-store/internal/usecase"
	"stempede-store/pkg/middleware"
	"stempede-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes over one unit-of-work factory.
func Wiring(db Pinger, uow *repository.UnitOfWorkFactory, m *metrics.Metrics, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(uow, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, db, m, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	db Pinger,
	m *metrics.Metrics,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, logger)
	wireOrder(r, handler.Order, logger)
	wireSubcategory(r, handler.Subcategory, logger)
	wireSupportRequest(r, handler.SupportRequest, logger)

	r.Get("/health", health(db, logger))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseUnavailable(w, "Database unavailable")
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
