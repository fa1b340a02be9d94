package config

import (
	"fmt"

	"github.com/storekart/PriceRules/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	// Auto-migrate the schema
	err = DB.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.BlacklistedToken{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.DiscountRule{},
		&models.RuleProductFilter{},
		&models.RuleCategoryFilter{},
		&models.StoreSettings{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	// Seed the settings row so evaluation always has a policy to read
	if err := EnsureDefaultSettings(); err != nil {
		panic(fmt.Sprintf("Failed to seed store settings: %v", err))
	}
}

// EnsureDefaultSettings creates the singleton settings row if missing.
// Defaults match what the storefront expects before an admin touches
// anything: lowest tie-break, visible to everyone, no exclusive rule.
func EnsureDefaultSettings() error {
	var count int64
	if err := DB.Model(&models.StoreSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := models.StoreSettings{
		ApplyRule:     "lowest",
		ShowTo:        "all",
		ExclusiveRule: "",
		FromText:      "From",
	}
	return DB.Create(&settings).Error
}
