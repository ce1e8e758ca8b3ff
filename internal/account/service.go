package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"markethub/internal/logger"
	"markethub/internal/store"

	"go.uber.org/zap"
)

// Service defines the business logic of the account directory.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (Account, error)
	Authenticate(ctx context.Context, email, secret string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, bool, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (Account, error)
	ChangeSecret(ctx context.Context, email, current, next string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register validates the candidate, checks email uniqueness and appends the
// new account to the directory. The returned account is ready for an
// immediate login.
func (s *service) Register(ctx context.Context, params RegisterParams) (Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", params.Email),
	)

	if err := validateRegister(params); err != nil {
		log.Warn("register rejected", zap.Error(err))
		return Account{}, err
	}

	accounts, err := s.loadDirectory(ctx)
	if err != nil {
		return Account{}, err
	}

	// Email comparison is exact and case-sensitive, matching the stored key.
	for _, a := range accounts {
		if a.Email == params.Email {
			log.Warn("register rejected", zap.Error(ErrDuplicateAccount))
			return Account{}, ErrDuplicateAccount
		}
	}

	hashed, err := HashSecret(params.Secret)
	if err != nil {
		log.Error("failed to hash secret", zap.Error(err))
		return Account{}, err
	}

	acc := Account{
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Secret:    hashed,
		Address:   "",
		CreatedAt: time.Now(),
	}

	if err := s.repo.SaveAll(ctx, append(accounts, acc)); err != nil {
		log.Error("failed to persist directory", zap.Error(err))
		return Account{}, err
	}

	log.Info("account registered")
	return acc, nil
}

// Authenticate matches the exact email and checks the secret against the
// stored hash. Unknown email and wrong secret are indistinguishable to the
// caller.
func (s *service) Authenticate(ctx context.Context, email, secret string) (Account, error) {
	if strings.TrimSpace(email) == "" || secret == "" {
		return Account{}, fmt.Errorf("%w: email and secret are required", ErrValidation)
	}

	accounts, err := s.loadDirectory(ctx)
	if err != nil {
		return Account{}, err
	}

	for _, a := range accounts {
		if a.Email == email && CheckSecretHash(secret, a.Secret) {
			return a, nil
		}
	}

	logger.FromCtx(ctx).Warn("authentication failed", zap.String("email", email))
	return Account{}, ErrInvalidCredentials
}

// FindByEmail rehydrates profile fields the session projection does not
// carry (address).
func (s *service) FindByEmail(ctx context.Context, email string) (Account, bool, error) {
	accounts, err := s.loadDirectory(ctx)
	if err != nil {
		return Account{}, false, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return a, true, nil
		}
	}
	return Account{}, false, nil
}

// UpdateProfile applies a profile-settings save. A changed email is a
// directory re-key: uniqueness is re-checked and the record moves to the
// new key atomically with the rest of the update.
func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProfile"),
		zap.String("email", params.Email),
	)

	if strings.TrimSpace(params.Name) == "" {
		return Account{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(params.Phone) == "" {
		return Account{}, fmt.Errorf("%w: phone is required", ErrValidation)
	}

	accounts, err := s.loadDirectory(ctx)
	if err != nil {
		return Account{}, err
	}

	idx := -1
	for i, a := range accounts {
		if a.Email == params.Email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Account{}, ErrAccountNotFound
	}

	newEmail := params.Email
	if params.NewEmail != "" && params.NewEmail != params.Email {
		for _, a := range accounts {
			if a.Email == params.NewEmail {
				log.Warn("re-key rejected", zap.String("new_email", params.NewEmail))
				return Account{}, ErrDuplicateAccount
			}
		}
		newEmail = params.NewEmail
	}

	accounts[idx].Name = params.Name
	accounts[idx].Email = newEmail
	accounts[idx].Phone = params.Phone
	accounts[idx].Address = params.Address

	if err := s.repo.SaveAll(ctx, accounts); err != nil {
		log.Error("failed to persist directory", zap.Error(err))
		return Account{}, err
	}

	log.Info("profile updated", zap.Bool("rekeyed", newEmail != params.Email))
	return accounts[idx], nil
}

// ChangeSecret replaces the stored hash after verifying the current secret.
func (s *service) ChangeSecret(ctx context.Context, email, current, next string) error {
	if len(next) < MinSecretLen {
		return fmt.Errorf("%w: secret must be at least %d characters", ErrValidation, MinSecretLen)
	}

	accounts, err := s.loadDirectory(ctx)
	if err != nil {
		return err
	}

	for i, a := range accounts {
		if a.Email != email {
			continue
		}
		if !CheckSecretHash(current, a.Secret) {
			return ErrInvalidCredentials
		}
		hashed, err := HashSecret(next)
		if err != nil {
			return err
		}
		accounts[i].Secret = hashed
		return s.repo.SaveAll(ctx, accounts)
	}

	return ErrAccountNotFound
}

// loadDirectory treats a corrupt record as an empty directory. The
// repository has already logged the loss.
func (s *service) loadDirectory(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.LoadAll(ctx)
	if err != nil && !errors.Is(err, store.ErrCorruptRecord) {
		logger.FromCtx(ctx).Error("failed to load directory", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

func validateRegister(params RegisterParams) error {
	switch {
	case strings.TrimSpace(params.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(params.Email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case strings.TrimSpace(params.Phone) == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	case params.Secret == "":
		return fmt.Errorf("%w: secret is required", ErrValidation)
	case params.Secret != params.ConfirmSecret:
		return fmt.Errorf("%w: secrets do not match", ErrValidation)
	case len(params.Secret) < MinSecretLen:
		return fmt.Errorf("%w: secret must be at least %d characters", ErrValidation, MinSecretLen)
	}
	return nil
}
