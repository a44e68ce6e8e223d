package services

import (
	"context"

	"go.uber.org/zap"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/models"
)

// AuthService verifies credentials and issues session tokens. Lookup
// failures and bad passwords both come back as the same unauthorized
// message so the response never reveals which part was wrong.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		logger.L.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, apperror.Unauthorized("invalid username or password")
	}

	if user.Status != models.StatusActive {
		return nil, apperror.Unauthorized("account is inactive")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperror.New(apperror.KindInternal, "failed to issue token")
	}

	logger.L.Info("user logged in", zap.String("username", user.Username))
	return &models.AuthResponse{Token: token, User: user}, nil
}
