package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"markethub/internal/config"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func buildDSN(cfg *config.Config) string {
	return "file:" + filepath.Join(cfg.DataDir, cfg.StoreFile)
}

func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, driverName)
}

func newDatabaseWithDriver(cfg *config.Config, driver string) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := sql.Open(driver, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	// The store is scoped to one local profile; a single connection keeps
	// writes serialized the way the embedded driver expects.
	db.SetMaxOpenConns(1)

	return db, nil
}

func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}

	log.Println("Record store opened")
	return db
}
