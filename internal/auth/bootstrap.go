package auth

import (
	"context"
	"errors"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/db"
	"candidate-management-db/internal/logger"
	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"
)

// EnsureDefaultAccounts creates the configured admin and sub-admin
// accounts on first start. Existing accounts are left alone.
func EnsureDefaultAccounts(ctx context.Context, repo db.AccountRepository, cfg *config.Config) error {
	log := logger.Get()

	defaults := []struct {
		email    string
		password string
		role     model.Role
	}{
		{cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, model.RoleAdmin},
		{cfg.Bootstrap.SubAdminEmail, cfg.Bootstrap.SubAdminPassword, model.RoleSubAdmin},
	}

	for _, d := range defaults {
		if d.email == "" || d.password == "" {
			continue
		}

		_, err := repo.GetByEmail(ctx, d.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		hash, err := HashPassword(d.password)
		if err != nil {
			return err
		}

		account := &model.Account{Email: d.email, PasswordHash: hash, Role: d.role}
		if err := repo.Create(ctx, account); err != nil {
			return err
		}
		log.Info().Str("email", d.email).Str("role", string(d.role)).Msg("Default account created")
	}

	return nil
}
