package dbhelper

import (
	"log"

	"wardrobeapi/models"

	"gorm.io/gorm"
)

func SetupCleaner(db *gorm.DB) func() {

	return func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.OutfitGeneration{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Clothing{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.UserAccount{})
	}
}

func Migrate(db *gorm.DB, model interface{}) {
	err := db.AutoMigrate(model)
	if err != nil {
		log.Printf("Error while migrating %T", model)
		log.Fatal(err)
	}
}
