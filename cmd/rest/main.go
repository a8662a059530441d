// FILE: cmd/rest/main.go
package main

import (
	"context"
	"log"

	"offerstack-be/internal/bootstrap"
	"offerstack-be/internal/config"
	"offerstack-be/internal/server"
	"offerstack-be/internal/tracer"
	"offerstack-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (optional, behind config flag)
	if cfg.App.TracingEnabled {
		shutdownTracer := tracer.InitTracer()
		defer shutdownTracer(context.Background())
	}

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start the outbound workflow dispatcher
	go func() {
		log.Println("Background: Starting Workflow Dispatcher...")
		if err := container.WorkflowDispatcher.Run(context.Background()); err != nil {
			log.Printf("Background Dispatcher Error: %v", err)
		}
	}()

	// 6. Initialize and run the server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
