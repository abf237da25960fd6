package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser возвращает пользователя, создавая его при первом обращении
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, error) {
	existingUser, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if existingUser != nil {
		return existingUser, nil
	}

	// По умолчанию студент без ограничений по доступности
	user := &model.User{
		TelegramID:        telegramID,
		Username:          username,
		FirstName:         firstName,
		LastName:          lastName,
		Role:              model.RoleStudent,
		IsActive:          true,
		RestrictionPolicy: model.RestrictionUnrestricted,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SetRestrictionPolicy меняет политику проверки доступности учителя. Только для администратора.
func (s *UserService) SetRestrictionPolicy(ctx context.Context, admin *model.User, teacherID int64, policy model.RestrictionPolicy) error {
	if !admin.IsAdmin() {
		return ErrForbidden
	}

	teacher, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}

	if teacher == nil {
		return ErrUserNotFound
	}

	if !teacher.IsTeacher() {
		return ErrNotATeacher
	}

	err = s.userRepo.SetRestrictionPolicy(ctx, teacherID, policy)
	if err != nil {
		return fmt.Errorf("set restriction policy: %w", err)
	}

	s.logger.Info("Restriction policy changed",
		zap.Int64("teacher_id", teacherID),
		zap.Int64("admin_id", admin.ID),
		zap.String("policy", string(policy)),
	)

	return nil
}
