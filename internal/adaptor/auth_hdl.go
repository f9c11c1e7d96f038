package adaptor

import (
	"encoding/json"
	"net/http"

	"stempede-store/internal/dto/request"
	"stempede-store/internal/usecase"
	"stempede-store/pkg/middleware"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result := h.service.Register(r.Context(), &req, middleware.ClientIP(r))
	writeResult(w, result, http.StatusCreated)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result := h.service.Login(r.Context(), &req, middleware.ClientIP(r))
	writeResult(w, result, http.StatusOK)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.service.Logout(r.Context(), middleware.ClientIP(r)), http.StatusOK)
}
