// Package account is a thin credential and profile layer over the account
// store. Passwords are bcrypt-hashed before they reach storage.
package account

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type Service struct {
	accounts repository.AccountRepository
	settings repository.SettingsRepository
	logger   *zap.Logger
}

// New constructs the account service. The settings repository may be nil in
// contexts without notification preferences; reads then fall back to the
// defaults.
func New(accounts repository.AccountRepository, settings repository.SettingsRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		accounts: accounts,
		settings: settings,
		logger:   logger,
	}
}

// Register creates a new account. It reports false without error when the
// username is already taken or the input is invalid.
func (s *Service) Register(ctx context.Context, username, password, email string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	taken, err := s.accounts.Exists(ctx, username)
	if err != nil {
		return false, err
	}
	if taken {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return false, err
	}
	s.logger.Info("account registered", zap.String("username", username))
	return true, nil
}

// Authenticate returns the account when the credentials match, nil when the
// account is unknown or the password is wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return account, nil
}

// Exists reports whether the username is registered.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	return s.accounts.Exists(ctx, username)
}

// ChangePassword swaps the credential after verifying the old one. It
// reports false when the old credential does not authenticate.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (bool, error) {
	if newPassword == "" {
		return false, nil
	}

	account, err := s.Authenticate(ctx, username, oldPassword)
	if err != nil {
		return false, err
	}
	if account == nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	account.PasswordHash = string(hash)

	if err := s.accounts.Update(ctx, account); err != nil {
		return false, err
	}
	s.logger.Info("password changed", zap.String("username", username))
	return true, nil
}

// Get returns the account with the given username, or nil when absent.
func (s *Service) Get(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

// List returns every registered account.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// Update persists profile changes for an existing account.
func (s *Service) Update(ctx context.Context, account *domain.Account) error {
	if account == nil || account.Username == "" {
		return domain.ErrInvalidPayload
	}
	return s.accounts.Update(ctx, account)
}

// Delete removes an account. Deleting an unknown username is a no-op.
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.accounts.Delete(ctx, username)
}

// NotificationSettings returns the account's stored preferences, or the
// defaults when nothing was saved yet.
func (s *Service) NotificationSettings(ctx context.Context, username string) (*domain.NotificationSettings, error) {
	if username == "" {
		return nil, domain.ErrInvalidPayload
	}
	if s.settings == nil {
		return domain.DefaultNotificationSettings(username), nil
	}

	stored, err := s.settings.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return domain.DefaultNotificationSettings(username), nil
		}
		return nil, err
	}
	return stored, nil
}

// UpdateNotificationSettings validates and persists the preferences.
func (s *Service) UpdateNotificationSettings(ctx context.Context, settings *domain.NotificationSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if s.settings == nil {
		return domain.NewError(domain.ErrCodeInternal, "settings store not configured")
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return err
	}
	s.logger.Info("notification settings updated", zap.String("username", settings.Owner))
	return nil
}
