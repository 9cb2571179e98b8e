package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/store"
)

type adminService struct {
	repo   store.AdminRepository
	logger *logger.Logger
}

// NewAdminService returns the service guarding the admin area. The backing
// row is seeded with the default password on construction.
func NewAdminService(ctx context.Context, repo store.AdminRepository, log *logger.Logger) (AdminService, error) {
	if err := repo.EnsureSeeded(ctx); err != nil {
		return nil, fmt.Errorf("error seeding admin credential: %w", err)
	}

	return &adminService{
		repo:   repo,
		logger: log.GetChildLogger(),
	}, nil
}

func (s *adminService) VerifyPassword(ctx context.Context, password string) error {
	hash, err := s.repo.PasswordHash(ctx)
	if err != nil {
		return err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("error comparing password: %w", err)
	}

	return nil
}

func (s *adminService) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.VerifyPassword(ctx, current); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = s.repo.SetPasswordHash(ctx, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("func", "adminService.ChangePassword").Msg("admin password changed")

	return nil
}
