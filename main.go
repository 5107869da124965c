package main

import (
	"fmt"
	"log"
	"os"

	"clearview-backend/config"
	"clearview-backend/models"
	"clearview-backend/pricing"
	"clearview-backend/routes"
	"clearview-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Job{},
		&models.SchedulePause{},
		&models.PricingTier{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := pricing.SeedTiers(db); err != nil {
		log.Fatalf("Failed to seed pricing tiers: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	lifecycle := services.NewLifecycle(db)
	services.NewPauseExpiry(db, lifecycle).StartScheduler()

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		services.NewNotifier(db, cfg).StartScheduler()
	} else {
		log.Println("Twilio not configured, visit reminders disabled")
	}

	r := routes.SetupRouter(cfg, db)
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
