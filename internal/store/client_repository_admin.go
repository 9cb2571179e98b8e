package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/adilfashion/tailorsync/internal/logger"
)

// defaultAdminPassword is the out-of-the-box credential seeded on first run.
// The shop owner is expected to change it from the settings screen.
const defaultAdminPassword = "0000"

type adminRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAdminRepository returns the repository backing the single-row admin
// credential table.
func NewAdminRepository(db *DB) AdminRepository {
	return &adminRepository{
		db:     db,
		logger: db.logger.GetChildLogger(),
	}
}

func (r *adminRepository) EnsureSeeded(ctx context.Context) error {
	var count int64
	if err := r.db.QueryRowContext(ctx, countAdminRows).Scan(&count); err != nil {
		r.logger.Err(err).Str("func", "adminRepository.EnsureSeeded").Msg("error counting admin rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Err(err).Str("func", "adminRepository.EnsureSeeded").Msg("error hashing default password")
		return fmt.Errorf("error hashing default password: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, insertAdminRow, string(hash)); err != nil {
		r.logger.Err(err).Str("func", "adminRepository.EnsureSeeded").Msg("error seeding admin row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	r.logger.Info().Str("func", "adminRepository.EnsureSeeded").Msg("seeded default admin credential")

	return nil
}

func (r *adminRepository) PasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, getAdminPassword).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAdminNotSeeded
		}
		r.logger.Err(err).Str("func", "adminRepository.PasswordHash").Msg("error reading admin credential")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return hash, nil
}

func (r *adminRepository) SetPasswordHash(ctx context.Context, hash string) error {
	res, err := r.db.ExecContext(ctx, updateAdminPassword, hash)
	if err != nil {
		r.logger.Err(err).Str("func", "adminRepository.SetPasswordHash").Msg("error updating admin credential")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "adminRepository.SetPasswordHash").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAdminNotSeeded
	}

	return nil
}
