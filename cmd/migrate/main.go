// Migration script for the application pipeline schema
// cmd/migrate/main.go
package main

import (
	"log"
	"openrole-api/config"
	"openrole-api/models"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	err := config.DB.AutoMigrate(
		&models.Application{},
		&models.ApplicationStatusHistory{},
		&models.ApplicationFeedback{},
		&models.CandidateProfile{},
		&models.PrivacySettings{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	// Backfill privacy settings for profiles created before the settings
	// table existed. Every profile must carry a settings row.
	var profiles []models.CandidateProfile
	if err := config.DB.Where("delete_at IS NULL").Find(&profiles).Error; err != nil {
		log.Fatal("Failed to fetch profiles:", err)
	}

	for _, profile := range profiles {
		var count int64
		if err := config.DB.Model(&models.PrivacySettings{}).
			Where("profile_id = ?", profile.ProfileID).
			Count(&count).Error; err != nil {
			log.Printf("Failed to check settings for profile %d: %v\n", profile.ProfileID, err)
			continue
		}
		if count > 0 {
			continue
		}

		settings := models.DefaultPrivacySettings(profile.ProfileID)
		if err := config.DB.Create(&settings).Error; err != nil {
			log.Printf("Failed to create settings for profile %d: %v\n", profile.ProfileID, err)
			continue
		}
		log.Printf("Created default privacy settings for profile %d\n", profile.ProfileID)
	}

	log.Println("Migration completed!")
}
