package usecase

import (
	"context"
	"strings"

	"stempede-store/internal/data/repository"
	"stempede-store/internal/dto/request"
	"stempede-store/internal/dto/response"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgProfileRetrieved    = "User profile retrieved successfully."
	msgProfileUpdated      = "User profile updated successfully."
	msgProfileFailed       = "Failed to retrieve user profile."
	msgProfileUpdateFailed = "Failed to update user profile."
	msgInvalidProfile      = "Invalid profile data."
	msgUsernameImmutable   = "Username cannot be changed."
	msgUserNotFound        = "User not found."
)

type UserService interface {
	GetProfile(ctx context.Context, username string) response.Result[*response.UserProfileResponse]
	UpdateProfile(ctx context.Context, username string, req *request.UpdateProfileRequest) response.Result[*response.UserProfileResponse]
}

type userService struct {
	uow *repository.UnitOfWorkFactory
	rec Recorder
	log *zap.Logger
}

func NewUserService(uow *repository.UnitOfWorkFactory, rec Recorder, log *zap.Logger) UserService {
	return &userService{
		uow: uow,
		rec: rec,
		log: log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, username string) response.Result[*response.UserProfileResponse] {
	return observe(s.rec, "user", "get_profile", s.getProfile(ctx, username))
}

func (s *userService) getProfile(ctx context.Context, username string) response.Result[*response.UserProfileResponse] {
	log := s.log.With(zap.String("username", username))

	uow := s.uow.New()
	defer uow.Close()

	user, err := findUserByUsername(ctx, uow, username)
	if err != nil {
		return storageFailure[*response.UserProfileResponse](log, err, msgProfileFailed, msgProfileFailed)
	}
	if user == nil {
		return response.Fail[*response.UserProfileResponse](response.KindNotFound, msgUserNotFound, msgUserNotFound)
	}

	roles, err := roleNames(ctx, uow, user.ID)
	if err != nil {
		return storageFailure[*response.UserProfileResponse](log, err, msgProfileFailed, msgProfileFailed)
	}

	profile := response.UserToProfile(user, roles)
	return response.Ok(&profile, msgProfileRetrieved)
}

// UpdateProfile replaces the supplied fields of the user's profile.
func (s *userService) UpdateProfile(ctx context.Context, username string, req *request.UpdateProfileRequest) response.Result[*response.UserProfileResponse] {
	return observe(s.rec, "user", "update_profile", s.updateProfile(ctx, username, req))
}

func (s *userService) updateProfile(ctx context.Context, username string, req *request.UpdateProfileRequest) response.Result[*response.UserProfileResponse] {
	log := s.log.With(zap.String("username", username))

	if req == nil {
		return response.Fail[*response.UserProfileResponse](response.KindValidation, msgInvalidProfile, msgInvalidProfile)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return response.Fail[*response.UserProfileResponse](response.KindValidation, msgInvalidProfile, utils.ValidationMessages(errs)...)
	}

	uow := s.uow.New()
	defer uow.Close()

	user, err := findUserByUsername(ctx, uow, username)
	if err != nil {
		return storageFailure[*response.UserProfileResponse](log, err, msgProfileUpdateFailed, msgProfileUpdateFailed)
	}
	if user == nil {
		return response.Fail[*response.UserProfileResponse](response.KindNotFound, msgUserNotFound, msgUserNotFound)
	}

	if req.Username != nil && !strings.EqualFold(strings.TrimSpace(*req.Username), user.Username) {
		return response.Fail[*response.UserProfileResponse](response.KindValidation, msgUsernameImmutable, msgUsernameImmutable)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	uow.User.Update(user)
	if _, err := uow.Complete(ctx); err != nil {
		return storageFailure[*response.UserProfileResponse](log, err, msgProfileUpdateFailed, msgProfileUpdateFailed)
	}

	roles, err := roleNames(ctx, uow, user.ID)
	if err != nil {
		return storageFailure[*response.UserProfileResponse](log, err, msgProfileUpdateFailed, msgProfileUpdateFailed)
	}

	log.Info("User profile updated", zap.Int("user_id", user.ID))

	profile := response.UserToProfile(user, roles)
	return response.Ok(&profile, msgProfileUpdated)
}
