package main

import (
	"log"

	"notebookrag/internal/config"
	"notebookrag/internal/model"
	"notebookrag/pkg/database"

	"gorm.io/gorm"
)

// Standalone migration runner for the notebook catalog. The REST entry
// point migrates on startup too; this exists for deployments that run
// schema changes as a separate step.
func main() {
	cfg := config.Load()

	var db *gorm.DB
	var err error
	if cfg.Database.Connection != "" {
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection)
	} else {
		db, err = database.NewSQLiteDB(cfg.Database.SQLitePath)
	}
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	log.Println("Migrating catalog schema...")

	if cfg.Database.Connection != "" {
		// uuid primary keys on postgres
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Printf("Warn: could not ensure uuid-ossp extension: %v", err)
		}
	}

	if err := db.AutoMigrate(&model.Notebook{}, &model.File{}); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	log.Println("Migration complete.")
}
