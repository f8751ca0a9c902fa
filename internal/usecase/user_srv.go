package usecase

import (
	"context"
	"fmt"

	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)

	// Admin
	DeleteUser(ctx context.Context, adminID, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	audit    AuditService
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, audit AuditService, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		audit:    audit,
		log:      log,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("invalid user ID")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

// DeleteUser removes an account and everything hanging off it in one
// transaction: notifications, sessions, and booking history go with it.
func (us *userService) DeleteUser(ctx context.Context, adminID, userID string) error {
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("invalid admin ID")
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("id", userID))
		return fmt.Errorf("failed to delete user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if err := us.userRepo.DeleteCascade(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("id", userID))
		return fmt.Errorf("failed to delete user")
	}

	us.log.Info("User deleted", zap.String("user_id", id.String()), zap.String("email", user.Email))

	us.audit.Record(ctx, &adminUUID, "user.delete", "user", id.String(), map[string]any{
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
	})

	return nil
}
