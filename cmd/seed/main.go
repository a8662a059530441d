// FILE: cmd/seed/main.go
package main

import (
	"encoding/json"
	"log"
	"os"

	"offerstack-be/internal/model"
	"offerstack-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding offerstack data...")

	seedAdmin(db)
	seedCatalog(db)
	seedGuaranteeTemplate(db)
	seedDemoCampaign(db)
	seedContinuityPlan(db)

	color.Green("✅ Seeding completed")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@offerstack.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		color.Yellow("SEED_ADMIN_PASSWORD not set, using the default dev password")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash admin password: %v", err)
	}
	hashStr := string(hash)

	admin := model.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Back Office Admin",
		Role:         "admin",
		Status:       "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error: failed to create admin: %v", err)
	}
	color.Green("Created admin %s", email)
}

func seedCatalog(db *gorm.DB) {
	perceived := func(v float64) *float64 { return &v }

	products := []model.Product{
		{Title: "Revenue Leak Audit Report", Description: "A teardown of where your funnel loses money, with fixes ranked by impact.", Price: 490, PerceivedValue: perceived(1500), OfferRole: "core_offer", IsFeatured: true, DisplayOrder: 1},
		{Title: "Outbound Playbook", Description: "The exact scripts and cadences our team uses for cold outreach.", Price: 190, PerceivedValue: perceived(600), OfferRole: "bonus", DisplayOrder: 2},
		{Title: "Pricing Teardown Video", Description: "45-minute recorded teardown of SaaS pricing pages.", Price: 0, PerceivedValue: perceived(250), OfferRole: "lead_magnet", DisplayOrder: 3},
	}
	for _, p := range products {
		var existing model.Product
		if err := db.Where("title = ?", p.Title).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating product %q: %v", p.Title, err)
		} else {
			color.Green("Created product %q", p.Title)
		}
	}

	services := []model.Service{
		{Title: "Growth Sprint (6 weeks)", Description: "Hands-on funnel rebuild with weekly working sessions.", Price: 7500, PerceivedValue: perceived(20000), OfferRole: "core_offer", DisplayOrder: 1},
		{Title: "Sales Call Coaching", Description: "Call reviews and live coaching for your closers.", Price: 2500, PerceivedValue: perceived(6000), OfferRole: "upsell", DisplayOrder: 2},
	}
	for _, s := range services {
		var existing model.Service
		if err := db.Where("title = ?", s.Title).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			log.Printf("Error creating service %q: %v", s.Title, err)
		} else {
			color.Green("Created service %q", s.Title)
		}
	}
}

func seedGuaranteeTemplate(db *gorm.DB) {
	const name = "90-Day Results Guarantee"

	var existing model.GuaranteeTemplate
	if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
		color.Yellow("Guarantee template %q already exists, skipping", name)
		return
	}

	conditions, _ := json.Marshal([]map[string]interface{}{
		{
			"id":                  "attend-all-working-sessions",
			"label":               "Attend all working sessions",
			"verification_method": "admin_verified",
			"required":            true,
		},
		{
			"id":                  "implement-the-priority-fixes",
			"label":               "Implement the priority fixes",
			"description":         "The top three fixes from the audit report.",
			"verification_method": "client_self_report",
			"required":            true,
		},
	})

	template := model.GuaranteeTemplate{
		Name:              name,
		Description:       "Full refund if the sprint doesn't pay for itself within 90 days.",
		GuaranteeType:     "conditional",
		DurationDays:      90,
		Conditions:        datatypes.JSON(conditions),
		DefaultPayoutType: "refund",
		PayoutAmountType:  "full",
		IsActive:          true,
	}
	if err := db.Create(&template).Error; err != nil {
		log.Printf("Error creating guarantee template: %v", err)
		return
	}
	color.Green("Created guarantee template %q", name)
}

func seedDemoCampaign(db *gorm.DB) {
	const slug = "win-your-money-back"

	var existing model.AttractionCampaign
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		color.Yellow("Campaign %q already exists, skipping", slug)
		return
	}

	campaign := model.AttractionCampaign{
		Name:                 "Win Your Money Back",
		Slug:                 slug,
		Description:          "Complete the program milestones and get the full purchase refunded.",
		CampaignType:         "win_money_back",
		Status:               "draft",
		CompletionWindowDays: 90,
		MinPurchaseAmount:    490,
		PayoutType:           "refund",
		PayoutAmountType:     "full",
		PromoCopy:            "Do the work, get your money back. No fine print.",
		CriteriaTemplates: []model.CampaignCriteriaTemplate{
			{
				LabelTemplate:  "Complete the onboarding diagnostic",
				CriteriaType:   "action",
				TrackingSource: "diagnostic_completion",
				Required:       true,
				DisplayOrder:   1,
			},
			{
				LabelTemplate:    "Hit {{target_revenue}} in attributed revenue",
				CriteriaType:     "result",
				TrackingSource:   "manual",
				ThresholdSource:  "audit.target_revenue",
				ThresholdDefault: "10000",
				Required:         true,
				DisplayOrder:     2,
			},
		},
	}
	if err := db.Create(&campaign).Error; err != nil {
		log.Printf("Error creating demo campaign: %v", err)
		return
	}
	color.Green("Created campaign %q", campaign.Name)
}

func seedContinuityPlan(db *gorm.DB) {
	const name = "Growth Retainer"

	var existing model.ContinuityPlan
	if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
		color.Yellow("Continuity plan %q already exists, skipping", name)
		return
	}

	plan := model.ContinuityPlan{
		Name:                 name,
		Description:          "Monthly advisory retainer after the sprint ends.",
		BillingInterval:      "month",
		BillingIntervalCount: 1,
		AmountPerInterval:    1500,
		Currency:             "USD",
		MinCommitmentCycles:  3,
		TrialDays:            0,
		Features:             datatypes.NewJSONSlice([]string{"Monthly strategy call", "Async reviews", "Priority support"}),
		CancellationPolicy:   "Cancel anytime after the minimum commitment.",
		IsActive:             true,
	}
	if err := db.Create(&plan).Error; err != nil {
		log.Printf("Error creating continuity plan: %v", err)
		return
	}
	color.Green("Created continuity plan %q", name)
}
