package repositories

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artify/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&db_models.Account{},
		&db_models.CreditLedger{},
		&db_models.Model{},
		&db_models.GeneratedImage{},
		&db_models.WebhookDelivery{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
