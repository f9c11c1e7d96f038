package usecase

import (
	"context"
	"strings"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository"
	"stempede-store/internal/dto/response"
	"stempede-store/pkg/database"

	"go.uber.org/zap"
)

// Recorder receives the outcome of every service call.
type Recorder interface {
	ObserveOperation(service, operation, outcome string)
}

type Service struct {
	Auth           AuthService
	User           UserService
	Order          OrderService
	Subcategory    SubcategoryService
	SupportRequest SupportRequestService
}

func NewService(uow *repository.UnitOfWorkFactory, rec Recorder, log *zap.Logger) *Service {
	return &Service{
		Auth:           NewAuthService(uow, rec, log),
		User:           NewUserService(uow, rec, log),
		Order:          NewOrderService(uow, rec, log),
		Subcategory:    NewSubcategoryService(uow, rec, log),
		SupportRequest: NewSupportRequestService(uow, rec, log),
	}
}

func observe[T any](rec Recorder, service, operation string, result response.Result[T]) response.Result[T] {
	if rec != nil {
		outcome := "success"
		if !result.Success {
			outcome = string(result.Kind)
		}
		rec.ObserveOperation(service, operation, outcome)
	}
	return result
}

// storageFailure logs err with full detail and returns a failure that does
// not leak it.
func storageFailure[T any](log *zap.Logger, err error, transientMsg, unexpectedMsg string) response.Result[T] {
	if database.IsConnectionError(err) {
		log.Error("Database connection error", zap.Error(err))
		return response.Fail[T](response.KindTransient, transientMsg, transientMsg)
	}

	log.Error("Unexpected error", zap.Error(err))
	return response.Fail[T](response.KindUnexpected, unexpectedMsg, unexpectedMsg)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// roleNames resolves the names of every role linked to userID.
func roleNames(ctx context.Context, uow *repository.UnitOfWork, userID int) ([]string, error) {
	links, err := uow.UserRole.Find(ctx, repository.Where("user_id = ?", userID), "Role")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(links))
	for _, link := range links {
		if link.Role != nil {
			names = append(names, link.Role.RoleName)
		}
	}
	return names, nil
}

// findUserByUsername matches username under the store's collation.
func findUserByUsername(ctx context.Context, uow *repository.UnitOfWork, username string) (*entity.User, error) {
	return uow.User.Get(ctx, repository.Where(uow.TextEquals("username"), username))
}
