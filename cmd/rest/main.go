package main

import (
	"context"
	"log"

	"notebookrag/internal/bootstrap"
	"notebookrag/internal/config"
	"notebookrag/internal/model"
	"notebookrag/internal/server"
	"notebookrag/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (postgres DSN when set, local sqlite otherwise)
	var gormDB *gorm.DB
	var err error
	if cfg.Database.Connection != "" {
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
	} else {
		gormDB, err = database.NewSQLiteDB(cfg.Database.SQLitePath)
	}
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Notebook{}, &model.File{}); err != nil {
		log.Panicf("Unable to migrate catalog schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
