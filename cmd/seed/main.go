package main

import (
	"errors"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"consite/internal/config"
	"consite/internal/db"
	"consite/internal/model"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Site{},
		&model.Item{},
		&model.OrderDetails{},
		&model.OrderItem{},
		&model.AuthSession{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if err := seedAdmin(gormDB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := seedItems(gormDB); err != nil {
		log.Fatalf("Failed to seed item catalog: %v", err)
	}

	log.Println("Seed completed successfully")
}

// seedAdmin creates the initial active admin account if no user with the
// configured email exists yet. Credentials come from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD, with development defaults.
func seedAdmin(gormDB *gorm.DB) error {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@consite.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin12345")

	var existing model.User
	err := gormDB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        email,
		MobileNumber: "0000000000",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := gormDB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created admin user %s (id=%d)", email, admin.ID)
	return nil
}

// seedItems inserts a small starter catalog of common construction materials.
// Existing items are left untouched.
func seedItems(gormDB *gorm.DB) error {
	items := []model.Item{
		{Name: "Portland Cement 50kg", Manufacturer: "Holcim", Price: decimal.NewFromInt(12), QuantityAvailable: 500, VolumeType: "bag", Color: "grey"},
		{Name: "Rebar 12mm 6m", Manufacturer: "ArcelorMittal", Price: decimal.NewFromFloat(8.5), QuantityAvailable: 1200, VolumeType: "piece", Color: "black"},
		{Name: "Concrete Block 20cm", Manufacturer: "CRH", Price: decimal.NewFromFloat(1.75), QuantityAvailable: 4000, VolumeType: "piece", Color: "grey"},
		{Name: "Washed Sand m3", Manufacturer: "Heidelberg Materials", Price: decimal.NewFromInt(35), QuantityAvailable: 300, VolumeType: "cubic_meter", Color: "beige"},
		{Name: "Plywood Sheet 18mm", Manufacturer: "UPM", Price: decimal.NewFromInt(28), QuantityAvailable: 650, VolumeType: "sheet", Color: "brown"},
	}

	created := 0
	for _, item := range items {
		var existing model.Item
		err := gormDB.Where("name = ?", item.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := gormDB.Create(&item).Error; err != nil {
			return err
		}
		created++
	}
	log.Printf("Seeded %d new items (%d already present)", created, len(items)-created)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
