package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"artify/internal/models/db_models"
	"artify/internal/models/request_models"
	"artify/internal/repositories"
	"artify/pkg/replicate"
	"artify/pkg/storage"
	"artify/pkg/utils"
)

const (
	archiveURLTTL   = time.Hour
	providerTimeout = 30 * time.Second
)

type TrainingConfig struct {
	SiteBaseURL string
	Hardware    string
}

type TrainingServiceInterface interface {
	StartTraining(ctx context.Context, userID uuid.UUID, req request_models.StartTrainingRequest) error
}

type trainingService struct {
	creditRepo repositories.CreditRepository
	modelRepo  repositories.ModelRepository
	store      storage.ObjectStore
	provider   TrainingProvider
	cfg        TrainingConfig
	logger     *zap.Logger
}

func NewTrainingService(
	creditRepo repositories.CreditRepository,
	modelRepo repositories.ModelRepository,
	store storage.ObjectStore,
	provider TrainingProvider,
	cfg TrainingConfig,
	logger *zap.Logger,
) TrainingServiceInterface {
	return &trainingService{
		creditRepo: creditRepo,
		modelRepo:  modelRepo,
		store:      store,
		provider:   provider,
		cfg:        cfg,
		logger:     logger,
	}
}

// StartTraining runs the kickoff pipeline: credit check, archive URL,
// remote namespace, training submission, local row, credit decrement.
// There is no compensating rollback: a failure after the remote model was
// registered leaves it orphaned upstream, but the credit decrement comes
// last, so a failed kickoff never burns a credit.
func (s *trainingService) StartTraining(ctx context.Context, userID uuid.UUID, req request_models.StartTrainingRequest) error {
	credits, err := s.creditRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if credits.ModelTrainingCount <= 0 {
		return utils.ErrInsufficientCredits
	}

	fileKey := strings.TrimPrefix(req.FileKey, "training_data/")

	urlCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	archiveURL, err := s.store.PresignGet(urlCtx, fileKey, archiveURLTTL)
	if err != nil {
		return fmt.Errorf("failed to get the file url: %w", err)
	}

	s.checkHardware(ctx)

	modelID := fmt.Sprintf("%s_%d_%s", userID, time.Now().UnixMilli(), utils.Slugify(req.ModelName))
	jobToken := uuid.NewString()

	createCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()
	if err := s.provider.CreateModel(createCtx, modelID); err != nil {
		return err
	}

	webhookURL := fmt.Sprintf("%s/api/webhooks/training?token=%s",
		strings.TrimRight(s.cfg.SiteBaseURL, "/"), jobToken)

	trainCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()
	training, err := s.provider.CreateTraining(trainCtx, modelID, archiveURL, webhookURL)
	if err != nil {
		return err
	}

	row := &db_models.Model{
		ModelID:        modelID,
		UserID:         userID,
		JobToken:       jobToken,
		Gender:         req.Gender,
		ModelName:      req.ModelName,
		TrainingStatus: db_models.TrainingStatus(training.Status),
		TriggerWord:    replicate.TriggerWord,
		TrainingSteps:  replicate.TrainingSteps,
		TrainingID:     training.ID,
		FileKey:        fileKey,
	}
	if err := s.modelRepo.Insert(ctx, row); err != nil {
		return fmt.Errorf("%w: persisting model row: %v", utils.ErrDatabaseError, err)
	}

	if err := s.creditRepo.DecrementTraining(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("training submitted",
		zap.String("user_id", userID.String()),
		zap.String("model_id", modelID),
		zap.String("training_id", training.ID),
		zap.String("status", training.Status))
	return nil
}

// checkHardware logs when the configured SKU is not offered to this
// account. The submission still proceeds; the provider gives the final
// answer.
func (s *trainingService) checkHardware(ctx context.Context) {
	hwCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()
	skus, err := s.provider.ListHardware(hwCtx)
	if err != nil {
		s.logger.Warn("listing hardware", zap.Error(err))
		return
	}
	if !slices.Contains(skus, s.cfg.Hardware) {
		s.logger.Warn("configured hardware not in account offering",
			zap.String("hardware", s.cfg.Hardware))
	}
}
