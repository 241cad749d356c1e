package main

import (
	"context"
	"log"

	"tg-assist-be/internal/bootstrap"
	"tg-assist-be/internal/config"
	"tg-assist-be/internal/server"
	"tg-assist-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	if cfg.Telegram.BotToken == "" {
		log.Panicf("BOT_TOKEN is required")
	}

	// 2. Initialize Database (optional; file workflows degrade without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Printf("[WARN] Unable to connect to GORM DB, file workflows disabled: %v", err)
			gormDB = nil
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Service...")
		if err := container.AuditService.Consume(context.Background()); err != nil {
			log.Printf("Background Audit Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
