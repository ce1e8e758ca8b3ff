package main

import (
	"log"

	"markethub/internal/config"
	"markethub/internal/db"
	"markethub/internal/store"
)

// Bootstraps the record store schema. The app does the same on start;
// this exists for provisioning a data directory ahead of time.
func main() {
	cfg := config.LoadConfig()

	database := db.InitDB(cfg)
	defer database.Close()

	if err := store.EnsureSchema(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("record store schema is up to date")
}
