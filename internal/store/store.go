package store

import (
	"context"
	"database/sql"
	"fmt"

	"markethub/internal/logger"

	"go.uber.org/zap"
)

// Record keys known to the store. The whole persisted surface of the
// application is these two JSON documents.
const (
	KeyAccounts = "accounts"
	KeySession  = "session"
)

// Store is the local record store: a handful of named JSON documents,
// overwritten wholesale on every mutation. There are no partial updates
// and no transactions spanning keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type sqlStore struct {
	db *sql.DB
}

func New(db *sql.DB) Store {
	return &sqlStore{db: db}
}

// EnsureSchema creates the records table. Safe to call on every start.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure records table: %w", err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM records WHERE key = ?", key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to read record",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false, err
	}

	return []byte(value), true, nil
}

func (s *sqlStore) Put(ctx context.Context, key string, value []byte) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "store"),
		zap.String("method", "Put"),
		zap.String("key", key),
	)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(value))

	if err != nil {
		log.Error("failed to write record", zap.Error(err))
		return err
	}

	log.Debug("record written", zap.Int("bytes", len(value)))
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	// Deleting an absent key is a no-op, same as localStorage.removeItem.
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to delete record",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}
