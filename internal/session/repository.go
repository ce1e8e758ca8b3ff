package session

import (
	"context"
	"encoding/json"

	"markethub/internal/logger"
	"markethub/internal/store"

	"go.uber.org/zap"
)

type Repository interface {
	Load(ctx context.Context) (Session, bool, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

// Load reads the session record. Absence is a valid terminal read; a
// record that no longer parses counts as absent and reports
// store.ErrCorruptRecord.
func (r *repository) Load(ctx context.Context) (Session, bool, error) {
	raw, found, err := r.store.Get(ctx, store.KeySession)
	if err != nil {
		return Session{}, false, err
	}
	if !found {
		return Session{}, false, nil
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.FromCtx(ctx).Warn("session record is corrupt, treating as logged out",
			zap.Error(err),
		)
		return Session{}, false, store.ErrCorruptRecord
	}

	return s, true, nil
}

func (r *repository) Save(ctx context.Context, s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeySession, raw)
}

func (r *repository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, store.KeySession)
}
