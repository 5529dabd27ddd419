package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
	"github.com/kevserarslan/car-rental-management/internal/security"
)

const invalidCredentials = "Invalid email or password"

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	return s.register(ctx, in, domain.RoleUser)
}

func (s *authService) RegisterAdmin(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	return s.register(ctx, in, domain.RoleAdmin)
}

func (s *authService) register(ctx context.Context, in RegisterInput, role domain.Role) (*AuthResult, error) {
	logger.EnterMethod("authService.register", "email", in.Email, "role", role)

	email := strings.TrimSpace(in.Email)
	if err := ensureEmailFree(ctx, s.userRepo, email); err != nil {
		logger.ExitMethodWithError("authService.register", err)
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		logger.ExitMethodWithError("authService.register", err)
		return nil, err
	}

	user := &domain.User{
		Name:          in.Name,
		Email:         email,
		PasswordHash:  hash,
		Phone:         in.Phone,
		Address:       in.Address,
		DriverLicense: in.DriverLicense,
		Role:          role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.register", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	logger.ExitMethod("authService.register", "user_id", user.ID)
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Authentication(invalidCredentials)
		}
		return nil, err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		logger.WarnContext(ctx, "Login rejected", "email", email)
		return nil, domain.Authentication(invalidCredentials)
	}
	return s.issue(user)
}

func (s *authService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresIn: s.tokens.Expiry(), User: user}, nil
}
