package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notebookrag/internal/config"
	"notebookrag/internal/entity"
	"notebookrag/internal/model"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/pkg/database"
	"notebookrag/pkg/vectorstore"
)

const sampleDocument = `# Getting started

This notebook was created by the seeder. Upload your own PDF, text, or
markdown files, process them, and then ask questions about their content.

Processing splits each document into chunks, embeds them, and stores the
vectors in this notebook's private index. Questions are answered only
from what the index contains.
`

// Seeds a quickstart notebook with one unprocessed sample document.
// Run the server and POST the notebook's files/process endpoint to
// ingest it.
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
	if err := db.AutoMigrate(&model.Notebook{}, &model.File{}); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	const notebookName = "getting-started"

	notebook := entity.Notebook{
		Id:        uuid.New(),
		Name:      notebookName,
		CreatedAt: time.Now(),
	}
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		log.Fatalf("Error: Failed to create notebook (already seeded?): %v", err)
	}

	store := vectorstore.NewStore(cfg.App.DataDir)
	if _, err := store.CreateOrOpen(notebookName, false); err != nil {
		log.Fatalf("Error: Failed to create vector collection: %v", err)
	}

	dir := filepath.Join(cfg.App.UploadsDir, notebookName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Error: Failed to create uploads directory: %v", err)
	}

	stored := time.Now().Format("20060102150405") + "_" + uuid.NewString()[:8] + ".md"
	if err := os.WriteFile(filepath.Join(dir, stored), []byte(sampleDocument), 0o644); err != nil {
		log.Fatalf("Error: Failed to write sample document: %v", err)
	}

	file := entity.File{
		Id:               uuid.New(),
		NotebookId:       notebook.Id,
		OriginalFilename: "getting-started.md",
		StoredFilename:   stored,
		UploadedAt:       time.Now(),
	}
	if err := uow.FileRepository().Create(ctx, &file); err != nil {
		log.Fatalf("Error: Failed to record sample document: %v", err)
	}

	log.Printf("Seeded notebook %q with one unprocessed document.", notebookName)
}
