package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go.uber.org/zap"

	"artify/internal/config"
	"artify/internal/models/db_models"
)

func InitPostgresql(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		logger.Error("connecting to database", zap.Error(err))
		return nil, err
	}

	err = db.AutoMigrate(
		&db_models.Account{},
		&db_models.CreditLedger{},
		&db_models.Model{},
		&db_models.GeneratedImage{},
		&db_models.WebhookDelivery{},
	)
	if err != nil {
		logger.Error("running migrations", zap.Error(err))
		return nil, err
	}

	return db, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("closing database connection", zap.Error(err))
	}
}
