package replicate_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"artify/internal/config"
	"artify/internal/services"
	"artify/pkg/replicate"
)

var Module = fx.Provide(
	provideTrainingProvider)

func provideTrainingProvider(cfg *config.Config, logger *zap.Logger) (services.TrainingProvider, error) {
	return replicate.NewClient(replicate.Config{
		Token:          cfg.ReplicateToken,
		ModelOwner:     cfg.ModelOwner,
		TrainerOwner:   cfg.TrainerOwner,
		TrainerName:    cfg.TrainerName,
		TrainerVersion: cfg.TrainerVersion,
		Hardware:       cfg.Hardware,
	}, nil, logger)
}
