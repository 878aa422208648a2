package main

import (
	"context"
	"log"

	"writer-coach-be/internal/bootstrap"
	"writer-coach-be/internal/config"
	"writer-coach-be/internal/server"
	"writer-coach-be/internal/tracer"
	"writer-coach-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; the dialog runs without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Printf("Warning: unable to connect to GORM DB: %v", err)
		} else {
			gormDB = db
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Indexing
	go func() {
		log.Println("Background: Starting Index Consumer...")
		if err := container.IndexConsumer.Consume(context.Background()); err != nil {
			log.Printf("Background Index Consumer Error: %v", err)
		}
	}()
	if container.IndexingReady {
		if err := container.IndexPublisher.PublishAll(context.Background(), false); err != nil {
			log.Printf("Warning: failed to queue startup indexing: %v", err)
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
