package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"artify/internal/models/response_models"
	"artify/internal/repositories"
	"artify/pkg/utils"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*response_models.DashboardStats, error)
}

type dashboardService struct {
	modelRepo  repositories.ModelRepository
	imageRepo  repositories.ImageRepository
	creditRepo repositories.CreditRepository
}

func NewDashboardService(
	modelRepo repositories.ModelRepository,
	imageRepo repositories.ImageRepository,
	creditRepo repositories.CreditRepository,
) DashboardServiceInterface {
	return &dashboardService{
		modelRepo:  modelRepo,
		imageRepo:  imageRepo,
		creditRepo: creditRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, userID uuid.UUID) (*response_models.DashboardStats, error) {
	modelCount, err := s.modelRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	imageCount, err := s.imageRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	stats := &response_models.DashboardStats{
		ModelCount: modelCount,
		ImageCount: imageCount,
	}

	credits, err := s.creditRepo.Get(ctx, userID)
	if err != nil {
		// Accounts predating the ledger simply show zero credits.
		if errors.Is(err, utils.ErrCreditRowMissing) {
			return stats, nil
		}
		return nil, utils.ErrDatabaseError
	}
	stats.ImageCreditsLeft = credits.ImageGenerationCount
	stats.ImageCreditsMax = credits.MaxImageGenerationCount
	stats.TrainCreditsLeft = credits.ModelTrainingCount
	stats.TrainCreditsMax = credits.MaxModelTrainingCount
	return stats, nil
}
