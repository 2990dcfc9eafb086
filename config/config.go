package config

import (
	"log"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"food-marketplace-api/models"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "food_marketplace_super_secret_2024"))

// Config carries all runtime settings, loaded once at startup
type Config struct {
	Port         string
	GinMode      string
	DBPath       string
	PushDriver   string // "kafka" or "memory"
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
}

// Load reads settings from the environment, with .env support for local runs
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env file: %v", err)
	}
	return &Config{
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", ""),
		DBPath:       getEnv("DB_PATH", "food_marketplace.db"),
		PushDriver:   getEnv("PUSH_DRIVER", "memory"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "orders"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "order-board"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Reward{},
		&models.RewardRedemption{},
		&models.InventoryItem{},
		&models.Quote{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.HygieneApplication{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
