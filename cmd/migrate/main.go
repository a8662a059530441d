// FILE: cmd/migrate/main.go
package main

import (
	"log"
	"os"

	"offerstack-be/internal/model"
	"offerstack-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate doesn't handle
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	models := []interface{}{
		&model.User{},

		// Catalog
		&model.Product{},
		&model.Service{},
		&model.Order{},
		&model.DiscountCode{},

		// Guarantees
		&model.GuaranteeTemplate{},
		&model.GuaranteeInstance{},
		&model.GuaranteeMilestone{},

		// Campaigns
		&model.AttractionCampaign{},
		&model.CampaignCriteriaTemplate{},
		&model.CampaignEnrollment{},
		&model.EnrollmentCriterion{},
		&model.CampaignProgress{},

		// Bundles & upsell paths
		&model.OfferBundle{},
		&model.BundleItem{},
		&model.UpsellPath{},

		// Continuity
		&model.ContinuityPlan{},
		&model.ClientSubscription{},

		// Chat & outreach
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Lead{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
