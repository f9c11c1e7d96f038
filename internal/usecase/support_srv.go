package usecase

import (
	"context"
	"strings"

	"stempede-store/internal/data/repository"
	"stempede-store/internal/dto/request"
	"stempede-store/internal/dto/response"

	"go.uber.org/zap"
)

const (
	msgSupportAllRetrieved  = "All support requests retrieved successfully."
	msgSupportNoneFound     = "No support requests found."
	msgSupportRetrieved     = "Support requests retrieved successfully."
	msgSupportFailed        = "Failed to retrieve support requests"
	msgSupportNotFound      = "Support request not found"
	msgSupportUnauthorized  = "Unauthorized"
	msgSupportUpdated       = "Support status updated successfully."
	msgSupportUpdateFailed  = "Failed to update support status"
	msgInvalidSupportStatus = "Invalid support status data."
	msgSupportUserNotFound  = "User not found"
)

var supportIncludes = []string{"User", "Order"}

type SupportRequestService interface {
	ListAll(ctx context.Context) response.Result[[]response.SupportRequestResponse]
	ListByUser(ctx context.Context, username string) response.Result[[]response.SupportRequestResponse]
	UpdateStatus(ctx context.Context, supportID int, req *request.UpdateSupportStatusRequest, username string) response.Result[string]
}

type supportRequestService struct {
	uow *repository.UnitOfWorkFactory
	rec Recorder
	log *zap.Logger
}

func NewSupportRequestService(uow *repository.UnitOfWorkFactory, rec Recorder, log *zap.Logger) SupportRequestService {
	return &supportRequestService{
		uow: uow,
		rec: rec,
		log: log.With(zap.String("service", "support_request")),
	}
}

func (s *supportRequestService) ListAll(ctx context.Context) response.Result[[]response.SupportRequestResponse] {
	return observe(s.rec, "support_request", "list_all", s.listAll(ctx))
}

func (s *supportRequestService) listAll(ctx context.Context) response.Result[[]response.SupportRequestResponse] {
	uow := s.uow.New()
	defer uow.Close()

	requests, err := uow.SupportRequest.GetAll(ctx, supportIncludes...).OrderByDesc("id").List()
	if err != nil {
		return storageFailure[[]response.SupportRequestResponse](s.log, err, msgSupportFailed, msgSupportFailed)
	}

	if len(requests) == 0 {
		return response.Ok([]response.SupportRequestResponse{}, msgSupportNoneFound)
	}

	return response.Ok(response.SupportRequestsToResponse(requests), msgSupportAllRetrieved)
}

func (s *supportRequestService) ListByUser(ctx context.Context, username string) response.Result[[]response.SupportRequestResponse] {
	return observe(s.rec, "support_request", "list_by_user", s.listByUser(ctx, username))
}

func (s *supportRequestService) listByUser(ctx context.Context, username string) response.Result[[]response.SupportRequestResponse] {
	log := s.log.With(zap.String("username", username))

	uow := s.uow.New()
	defer uow.Close()

	user, err := findUserByUsername(ctx, uow, username)
	if err != nil {
		return storageFailure[[]response.SupportRequestResponse](log, err, msgSupportFailed, msgSupportFailed)
	}
	if user == nil {
		return response.Fail[[]response.SupportRequestResponse](response.KindNotFound, msgSupportUserNotFound,
			"The specified user does not exist.")
	}

	requests, err := uow.SupportRequest.GetAll(ctx, supportIncludes...).
		Where(repository.Where("user_id = ?", user.ID)).
		OrderByDesc("id").
		List()
	if err != nil {
		return storageFailure[[]response.SupportRequestResponse](log, err, msgSupportFailed, msgSupportFailed)
	}

	return response.Ok(response.SupportRequestsToResponse(requests), msgSupportRetrieved)
}

func (s *supportRequestService) UpdateStatus(ctx context.Context, supportID int, req *request.UpdateSupportStatusRequest, username string) response.Result[string] {
	return observe(s.rec, "support_request", "update_status", s.updateStatus(ctx, supportID, req, username))
}

func (s *supportRequestService) updateStatus(ctx context.Context, supportID int, req *request.UpdateSupportStatusRequest, username string) response.Result[string] {
	log := s.log.With(zap.Int("support_id", supportID), zap.String("username", username))

	if req == nil || req.SupportStatus == nil {
		return response.Fail[string](response.KindValidation, msgInvalidSupportStatus, "support_status: This field is required")
	}

	uow := s.uow.New()
	defer uow.Close()

	supportRequest, err := uow.SupportRequest.GetByID(ctx, supportID, "User")
	if err != nil {
		return storageFailure[string](log, err, msgSupportUpdateFailed, msgSupportUpdateFailed)
	}
	if supportRequest == nil {
		return response.Fail[string](response.KindNotFound, msgSupportNotFound,
			"The specified support request does not exist.")
	}

	// Only the owner may change the status.
	if supportRequest.User == nil || !strings.EqualFold(supportRequest.User.Username, username) {
		log.Warn("Support status update denied")
		return response.Fail[string](response.KindForbidden, msgSupportUnauthorized,
			"You don't have permission to update this support request.")
	}

	status := *req.SupportStatus
	supportRequest.SupportStatus = &status
	uow.SupportRequest.Update(supportRequest)
	if _, err := uow.Complete(ctx); err != nil {
		return storageFailure[string](log, err, msgSupportUpdateFailed, msgSupportUpdateFailed)
	}

	log.Info("Support status updated", zap.Bool("status", status))
	return response.Ok(msgSupportUpdated, msgSupportUpdated)
}
