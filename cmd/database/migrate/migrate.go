package migration

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"reserve-backend/entities"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	}

	for _, model := range entities.Models() {
		if err := db.AutoMigrate(model); err != nil {
			log.Errorf("error migrating %T: %v", model, err)
			return err
		}
	}

	log.Info("database migration complete")
	return nil
}
