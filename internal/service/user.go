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

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User not found with id: %d", id)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(err, "User not found with email: %s", email)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateProfile lets callers edit their own contact details and password.
// Email and role changes are ignored here.
func (s *userService) UpdateProfile(ctx context.Context, caller domain.Caller, in UserUpdate) (*domain.User, error) {
	in.Email = nil
	in.Role = nil
	return s.update(ctx, caller.UserID, in)
}

func (s *userService) Update(ctx context.Context, id int64, in UserUpdate) (*domain.User, error) {
	return s.update(ctx, id, in)
}

func (s *userService) update(ctx context.Context, id int64, in UserUpdate) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.DriverLicense != nil {
		user.DriverLicense = *in.DriverLicense
	}
	if in.Email != nil && !strings.EqualFold(*in.Email, user.Email) {
		if err := ensureEmailFree(ctx, s.userRepo, *in.Email); err != nil {
			return nil, err
		}
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, notFoundOr(err, "User not found with id: %d", id)
	}
	logger.InfoContext(ctx, "User updated", "user_id", user.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "User not found with id: %d", id)
	}
	logger.InfoContext(ctx, "User deleted", "user_id", id)
	return nil
}

// EnsureAdmin creates the seed admin account unless a user with its email exists.
func (s *userService) EnsureAdmin(ctx context.Context, seed AdminSeed) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, seed.Email)
	if err == nil {
		logger.Debug("Admin account already present", "email", seed.Email)
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := security.HashPassword(seed.Password)
	if err != nil {
		return nil, err
	}
	admin := &domain.User{
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: hash,
		Phone:        seed.Phone,
		Address:      seed.Address,
		Role:         domain.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	logger.Info("Admin account created", "email", admin.Email, "user_id", admin.ID)
	return admin, nil
}

func ensureEmailFree(ctx context.Context, users repository.UserRepository, email string) error {
	_, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	}
	return domain.Conflict("Email already exists")
}
