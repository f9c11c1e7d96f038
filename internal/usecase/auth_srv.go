package usecase

import (
	"context"
	"strings"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository"
	"stempede-store/internal/dto/request"
	"stempede-store/internal/dto/response"
	"stempede-store/pkg/database"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgInvalidRegistration = "Invalid registration data."
	msgUserExists          = "User already exists."
	msgInvalidRole         = "Invalid or missing role provided."
	msgRoleNotFound        = "Role not found."
	msgRegisterConnection  = "A database connection error occurred. Please try again later."
	msgRegisterUnexpected  = "An unexpected error occurred. Please try again."
	msgRegistered          = "Registration successful."

	msgInvalidLogin    = "Invalid login data."
	msgBannedOrUnknown = "Invalid credentials or user is banned."
	msgInvalidPassword = "Invalid credentials."
	msgLoggedIn        = "Login successful."
	msgLoginConnection = "Login failed due to a database connection issue."
	msgLoginUnexpected = "Login failed. Please try again."
	msgLoggedOut       = "Logout successful."
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, clientAddress string) response.Result[string]
	Login(ctx context.Context, req *request.LoginRequest, clientAddress string) response.Result[*response.LoginResponse]
	Logout(ctx context.Context, clientAddress string) response.Result[string]
}

type authService struct {
	uow *repository.UnitOfWorkFactory
	rec Recorder
	log *zap.Logger
}

func NewAuthService(uow *repository.UnitOfWorkFactory, rec Recorder, log *zap.Logger) AuthService {
	return &authService{
		uow: uow,
		rec: rec,
		log: log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, clientAddress string) response.Result[string] {
	return observe(s.rec, "auth", "register", s.register(ctx, req, clientAddress))
}

func (s *authService) register(ctx context.Context, req *request.RegisterRequest, clientAddress string) response.Result[string] {
	log := s.log.With(zap.String("client", clientAddress))

	// 1. Validate input
	if req == nil || isBlank(req.Email) || isBlank(req.Username) || isBlank(req.Password) {
		log.Warn("Register rejected: missing fields")
		return response.Fail[string](response.KindValidation, msgInvalidRegistration,
			"Email, username and password are required.")
	}
	uow := s.uow.New()
	defer uow.Close()
	log = log.With(zap.String("uow", uow.ID.String()))

	// 2. Email or username already taken
	taken, err := uow.User.Any(ctx, repository.Where(
		"("+uow.TextEquals("email")+" OR "+uow.TextEquals("username")+")",
		req.Email, req.Username,
	))
	if err != nil {
		return storageFailure[string](log, err, msgRegisterConnection, msgRegisterUnexpected)
	}
	if taken {
		log.Info("Register rejected: user exists", zap.String("username", req.Username))
		return response.Fail[string](response.KindConflict, msgUserExists, msgUserExists)
	}

	// Format and length rules apply once the identity is known to be free.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn("Register validation failed", zap.Any("errors", errs))
		return response.Fail[string](response.KindValidation, msgInvalidRegistration, utils.ValidationMessages(errs)...)
	}

	// 3. Role must be on the whitelist
	roleName, ok := entity.ParseRoleName(req.Role)
	if !ok {
		log.Warn("Register rejected: invalid role", zap.String("role", req.Role))
		return response.Fail[string](response.KindValidation, msgInvalidRole, msgInvalidRole)
	}

	// 4. Role must exist
	role, err := uow.Role.Get(ctx, repository.Where(uow.TextEquals("role_name"), string(roleName)))
	if err != nil {
		return storageFailure[string](log, err, msgRegisterConnection, msgRegisterUnexpected)
	}
	if role == nil {
		log.Error("Register rejected: role row missing", zap.String("role", string(roleName)))
		return response.Fail[string](response.KindNotFound, msgRoleNotFound, msgRoleNotFound)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return response.Fail[string](response.KindUnexpected, msgRegisterUnexpected, msgRegisterUnexpected)
	}

	// 5. User and role link commit together
	tx, err := uow.BeginTransaction(ctx)
	if err != nil {
		return storageFailure[string](log, err, msgRegisterConnection, msgRegisterUnexpected)
	}
	defer tx.Rollback()

	user := &entity.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
		Address:  req.Address,
		Status:   true,
	}
	uow.User.Add(user)
	if _, err := uow.Complete(ctx); err != nil {
		return s.registerFailed(log, tx, err)
	}

	uow.UserRole.Add(&entity.UserRole{UserID: user.ID, RoleID: role.ID})
	if _, err := uow.Complete(ctx); err != nil {
		return s.registerFailed(log, tx, err)
	}

	if err := tx.Commit(); err != nil {
		return s.registerFailed(log, tx, err)
	}

	log.Info("User registered",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(roleName)),
	)

	return response.Ok(msgRegistered, msgRegistered)
}

// registerFailed rolls back and classifies err. A unique violation means a
// concurrent registration won the race.
func (s *authService) registerFailed(log *zap.Logger, tx *repository.Transaction, err error) response.Result[string] {
	if rbErr := tx.Rollback(); rbErr != nil {
		log.Warn("Rollback after failed registration", zap.Error(rbErr))
	}

	if database.IsDuplicateKey(err) {
		log.Info("Register rejected: unique constraint", zap.Error(err))
		return response.Fail[string](response.KindConflict, msgUserExists, msgUserExists)
	}

	return storageFailure[string](log, err, msgRegisterConnection, msgRegisterUnexpected)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, clientAddress string) response.Result[*response.LoginResponse] {
	return observe(s.rec, "auth", "login", s.login(ctx, req, clientAddress))
}

func (s *authService) login(ctx context.Context, req *request.LoginRequest, clientAddress string) response.Result[*response.LoginResponse] {
	log := s.log.With(zap.String("client", clientAddress))

	if req == nil || isBlank(req.EmailOrUsername) || isBlank(req.Password) {
		log.Warn("Login rejected: missing fields")
		return response.Fail[*response.LoginResponse](response.KindValidation, msgInvalidLogin,
			"Email or username and password are required.")
	}

	identifier := strings.TrimSpace(req.EmailOrUsername)

	uow := s.uow.New()
	defer uow.Close()

	user, err := uow.User.Get(ctx, repository.Where(
		"("+uow.TextEquals("email")+" OR "+uow.TextEquals("username")+")",
		identifier, identifier,
	))
	if err != nil {
		return storageFailure[*response.LoginResponse](log, err, msgLoginConnection, msgLoginUnexpected)
	}

	// Unknown and banned users get the same answer.
	if user == nil || !user.Status {
		log.Info("Login rejected: unknown or banned user", zap.String("identifier", identifier))
		return response.Fail[*response.LoginResponse](response.KindUnauthorized, msgBannedOrUnknown, msgBannedOrUnknown)
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		log.Info("Login rejected: wrong password", zap.Int("user_id", user.ID))
		return response.Fail[*response.LoginResponse](response.KindUnauthorized, msgInvalidPassword, msgInvalidPassword)
	}

	roles, err := roleNames(ctx, uow, user.ID)
	if err != nil {
		return storageFailure[*response.LoginResponse](log, err, msgLoginConnection, msgLoginUnexpected)
	}

	log.Info("User logged in", zap.Int("user_id", user.ID), zap.Strings("roles", roles))

	return response.Ok(&response.LoginResponse{Roles: roles}, msgLoggedIn)
}

// Logout acknowledges the request. There is no server-side session to end.
func (s *authService) Logout(ctx context.Context, clientAddress string) response.Result[string] {
	s.log.Info("User logged out", zap.String("client", clientAddress))
	return observe(s.rec, "auth", "logout", response.Ok(msgLoggedOut, msgLoggedOut))
}
