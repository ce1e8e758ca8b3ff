package account

import (
	"context"
	"encoding/json"

	"markethub/internal/logger"
	"markethub/internal/store"

	"go.uber.org/zap"
)

type Repository interface {
	LoadAll(ctx context.Context) ([]Account, error)
	SaveAll(ctx context.Context, accounts []Account) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

// LoadAll reads the accounts record. An absent record is an empty
// directory; a record that no longer parses degrades to an empty directory
// and reports store.ErrCorruptRecord so the caller knows data was reset.
func (r *repository) LoadAll(ctx context.Context) ([]Account, error) {
	raw, found, err := r.store.Get(ctx, store.KeyAccounts)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Account{}, nil
	}

	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		logger.FromCtx(ctx).Warn("accounts record is corrupt, falling back to empty",
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return []Account{}, store.ErrCorruptRecord
	}

	return accounts, nil
}

// SaveAll overwrites the whole accounts record.
func (r *repository) SaveAll(ctx context.Context, accounts []Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeyAccounts, raw)
}
