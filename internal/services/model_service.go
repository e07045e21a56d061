package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"artify/internal/models/response_models"
	"artify/internal/repositories"
	"artify/pkg/utils"
)

type ModelServiceInterface interface {
	ListModels(ctx context.Context, userID uuid.UUID) (*response_models.ModelListResponse, error)
	DeleteModel(ctx context.Context, userID, modelID uuid.UUID) error
}

type modelService struct {
	modelRepo repositories.ModelRepository
	provider  TrainingProvider
	logger    *zap.Logger
}

func NewModelService(
	modelRepo repositories.ModelRepository,
	provider TrainingProvider,
	logger *zap.Logger,
) ModelServiceInterface {
	return &modelService{
		modelRepo: modelRepo,
		provider:  provider,
		logger:    logger,
	}
}

func (s *modelService) ListModels(ctx context.Context, userID uuid.UUID) (*response_models.ModelListResponse, error) {
	models, count, err := s.modelRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, response_models.ModelResponse{
			ID:             m.ID.String(),
			ModelID:        m.ModelID,
			ModelName:      m.ModelName,
			Gender:         m.Gender,
			TrainingStatus: string(m.TrainingStatus),
			TriggerWord:    m.TriggerWord,
			TrainingSteps:  m.TrainingSteps,
			Version:        m.Version,
			TrainingTime:   m.TrainingTime,
			CreatedAt:      m.CreatedAt,
		})
	}
	return &response_models.ModelListResponse{Models: out, Count: count}, nil
}

// DeleteModel removes the trained version and the model from the provider
// in parallel, then drops the local row. The local delete only happens once
// both remote deletes have succeeded, so a half-deleted model stays visible
// and can be retried.
func (s *modelService) DeleteModel(ctx context.Context, userID, modelID uuid.UUID) error {
	model, err := s.modelRepo.FindByID(ctx, modelID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if model == nil || model.UserID != userID {
		return utils.ErrModelNotFound
	}

	delCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(delCtx)
	if model.Version != "" {
		g.Go(func() error {
			return s.provider.DeleteModelVersion(gctx, model.ModelID, model.Version)
		})
	}
	g.Go(func() error {
		return s.provider.DeleteModel(gctx, model.ModelID)
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("deleting remote model",
			zap.String("model_id", model.ModelID), zap.Error(err))
		return err
	}

	if err := s.modelRepo.Delete(ctx, modelID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
