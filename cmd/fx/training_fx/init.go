package training_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"artify/internal/config"
	"artify/internal/repositories"
	"artify/internal/services"
	"artify/pkg/storage"
)

var Module = fx.Provide(
	provideTrainingService, services.NewUploadService)

func provideTrainingService(
	creditRepo repositories.CreditRepository,
	modelRepo repositories.ModelRepository,
	store storage.ObjectStore,
	provider services.TrainingProvider,
	cfg *config.Config,
	logger *zap.Logger,
) services.TrainingServiceInterface {
	return services.NewTrainingService(creditRepo, modelRepo, store, provider, services.TrainingConfig{
		SiteBaseURL: cfg.SiteBaseURL,
		Hardware:    cfg.Hardware,
	}, logger)
}
