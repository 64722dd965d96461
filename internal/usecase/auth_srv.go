package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/repository"
	"stay-booking/internal/dto/request"
	"stay-booking/internal/dto/response"
	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*utils.TokenPair, error)
	// Refresh rotates the pair: the presented refresh token is revoked and a
	// new one is issued.
	Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	Verify(ctx context.Context, accessToken string) (*response.VerifyResponse, error)
	// Logout revokes the refresh token if it is still valid. It never fails on
	// a bad token, since the caller clears cookies either way.
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

const msgEmailTaken = "A user with this email already exists"

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	email := strings.TrimSpace(req.Email)

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, internalError(err)
	}
	if existing != nil {
		return nil, fieldError("email", msgEmailTaken)
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, internalError(err)
	}

	base, err := entity.NewBase(time.Now().UTC())
	if err != nil {
		return nil, internalError(err)
	}
	user := &entity.User{
		Base:         base,
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}

	// 4. Save user; the unique index settles concurrent registrations
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, fieldError("email", msgEmailTaken)
		}
		return nil, internalError(err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.RegisterResponse{UserID: user.ID.String(), UserEmail: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*utils.TokenPair, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, internalError(err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, unauthorizedError(MsgInvalidCredentials)
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, unauthorizedError("Account is disabled")
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	if refreshToken == "" {
		return nil, unauthorizedError("Refresh token is required")
	}

	claims, err := s.tokens.Parse(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil, unauthorizedError(MsgInvalidToken)
	}
	userID, _ := claims.UserID()

	// rotation: the old token is spent whatever happens next
	owner, err := s.repo.Session.Consume(ctx, claims.ID)
	if err != nil {
		return nil, internalError(err)
	}
	if owner != userID {
		s.log.Warn("Refresh token not in allow-list", zap.String("user_id", userID.String()))
		return nil, unauthorizedError(MsgInvalidToken)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	if user == nil || !user.IsActive {
		return nil, unauthorizedError(MsgInvalidToken)
	}

	return s.issue(ctx, user)
}

func (s *authService) Verify(ctx context.Context, accessToken string) (*response.VerifyResponse, error) {
	if accessToken == "" {
		return nil, unauthorizedError("Token is required")
	}

	claims, err := s.tokens.Parse(accessToken, utils.AccessToken)
	if err != nil {
		return nil, unauthorizedError(MsgInvalidToken)
	}

	return &response.VerifyResponse{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := s.tokens.Parse(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil
	}

	if err := s.repo.Session.Revoke(ctx, claims.ID); err != nil {
		return internalError(err)
	}

	s.log.Info("User logged out", zap.String("user_id", claims.Subject))
	return nil
}

// issue signs a fresh pair and allow-lists its refresh token.
func (s *authService) issue(ctx context.Context, user *entity.User) (*utils.TokenPair, error) {
	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to sign tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, internalError(err)
	}

	ttl := time.Until(pair.RefreshExpiresAt)
	if err := s.repo.Session.Store(ctx, pair.RefreshID, user.ID, ttl); err != nil {
		return nil, internalError(err)
	}

	return pair, nil
}
