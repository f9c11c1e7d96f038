package adaptor

import (
	"net/http"
	"strconv"

	"stempede-store/internal/dto/response"
	"stempede-store/internal/usecase"
	"stempede-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth           *AuthHandler
	User           *UserHandler
	Order          *OrderHandler
	Subcategory    *SubcategoryHandler
	SupportRequest *SupportRequestHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(service.Auth, log),
		User:           NewUserHandler(service.User, log),
		Order:          NewOrderHandler(service.Order, log),
		Subcategory:    NewSubcategoryHandler(service.Subcategory, log),
		SupportRequest: NewSupportRequestHandler(service.SupportRequest, log),
	}
}

// statusFor maps a failed result to its HTTP status code.
func statusFor(kind response.ErrorKind) int {
	switch kind {
	case response.KindValidation:
		return http.StatusBadRequest
	case response.KindNotFound:
		return http.StatusNotFound
	case response.KindConflict:
		return http.StatusConflict
	case response.KindUnauthorized:
		return http.StatusUnauthorized
	case response.KindForbidden:
		return http.StatusForbidden
	case response.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeResult writes result as the response body. successCode is used when
// the result succeeded.
func writeResult[T any](w http.ResponseWriter, result response.Result[T], successCode int) {
	code := successCode
	if !result.Success {
		code = statusFor(result.Kind)
	}
	utils.WriteJSON(w, code, result)
}

// idParam reads a positive integer path parameter.
func idParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
