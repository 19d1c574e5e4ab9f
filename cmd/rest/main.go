package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"afom-board-be/internal/bootstrap"
	"afom-board-be/internal/config"
	"afom-board-be/internal/model"
	"afom-board-be/internal/server"
	"afom-board-be/internal/tracer"
	"afom-board-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Otel)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.AutoMigrate(gormDB, model.All()...); err != nil {
			log.Panicf("Unable to migrate SQLite DB: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start board consumer: %v", err)
	}
	if err := container.WebSocketHub.Subscribe(ctx); err != nil {
		log.Printf("[WARN] Redis fan-out disabled: %v", err)
	}
	if container.ActivityService != nil {
		if err := container.ActivityService.Start(ctx); err != nil {
			log.Printf("[WARN] Activity worker disabled: %v", err)
		}
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		_ = srv.Shutdown()
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
