package dbhelper

import (
	"fmt"
	"os"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dsn() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		services.GetEnv("DB_USERNAME", ""),
		services.GetEnv("DB_PASSWORD", ""),
		services.GetEnv("DB_HOST", ""),
		services.GetEnv("DB_PORT", "5432"),
		services.GetEnv("DB_NAME", ""),
		services.GetEnv("DB_SSLMODE", "disable"),
	)
}

// SetupDB connects and migrates the wardrobe tables. It panics if postgres is unreachable.
func SetupDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Minute * 5)

	for _, model := range []interface{}{&models.UserAccount{}, &models.Clothing{}, &models.OutfitGeneration{}} {
		Migrate(db, model)
	}

	return db
}

// SetupTestDB points the connection at the local test database unless DB_* is already set.
func SetupTestDB() *gorm.DB {
	setDefault := func(key, value string) {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
	setDefault("DB_USERNAME", "wardrobe")
	setDefault("DB_PASSWORD", "wardrobe")
	setDefault("DB_HOST", "localhost")
	setDefault("DB_NAME", "wardrobe_test")
	setDefault("DB_PORT", "5432")
	return SetupDB()
}
