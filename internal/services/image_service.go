package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"artify/internal/models/db_models"
	"artify/internal/models/request_models"
	"artify/internal/models/response_models"
	"artify/internal/repositories"
	"artify/pkg/utils"
)

type ImageServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, req request_models.GenerateImageRequest) ([]string, error)
	ListGallery(ctx context.Context, userID uuid.UUID) ([]response_models.GeneratedImageResponse, error)
	DeleteImage(ctx context.Context, userID, imageID uuid.UUID) error
}

type imageService struct {
	creditRepo repositories.CreditRepository
	imageRepo  repositories.ImageRepository
	provider   TrainingProvider
	logger     *zap.Logger
}

func NewImageService(
	creditRepo repositories.CreditRepository,
	imageRepo repositories.ImageRepository,
	provider TrainingProvider,
	logger *zap.Logger,
) ImageServiceInterface {
	return &imageService{
		creditRepo: creditRepo,
		imageRepo:  imageRepo,
		provider:   provider,
		logger:     logger,
	}
}

// Generate spends one image credit, runs the model and stores the output
// URLs. The credit is taken up front with an atomic conditional decrement
// and refunded if the provider call fails.
func (s *imageService) Generate(ctx context.Context, userID uuid.UUID, req request_models.GenerateImageRequest) ([]string, error) {
	if err := s.creditRepo.DecrementImage(ctx, userID); err != nil {
		return nil, err
	}

	input := map[string]interface{}{
		"prompt": req.Prompt,
	}
	if req.Guidance > 0 {
		input["guidance"] = req.Guidance
	}
	if req.NumInferenceSteps > 0 {
		input["num_inference_steps"] = req.NumInferenceSteps
	}
	if req.OutputFormat != "" {
		input["output_format"] = req.OutputFormat
	}
	if req.AspectRatio != "" {
		input["aspect_ratio"] = req.AspectRatio
	}
	if req.NumOutputs > 0 {
		input["num_outputs"] = req.NumOutputs
	}

	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	urls, err := s.provider.Generate(runCtx, req.Model, input)
	if err != nil {
		if refundErr := s.creditRepo.IncrementImage(ctx, userID); refundErr != nil {
			s.logger.Error("refunding image credit", zap.Error(refundErr))
		}
		return nil, err
	}

	images := make([]db_models.GeneratedImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, db_models.GeneratedImage{
			UserID:         userID,
			URL:            url,
			Prompt:         req.Prompt,
			ModelRef:       req.Model,
			Guidance:       req.Guidance,
			InferenceSteps: req.NumInferenceSteps,
			OutputFormat:   req.OutputFormat,
			AspectRatio:    req.AspectRatio,
		})
	}
	if err := s.imageRepo.InsertBatch(ctx, images); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return urls, nil
}

func (s *imageService) ListGallery(ctx context.Context, userID uuid.UUID) ([]response_models.GeneratedImageResponse, error) {
	images, err := s.imageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.GeneratedImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, response_models.GeneratedImageResponse{
			ID:        img.ID.String(),
			URL:       img.URL,
			Prompt:    img.Prompt,
			ModelRef:  img.ModelRef,
			CreatedAt: img.CreatedAt,
		})
	}
	return out, nil
}

func (s *imageService) DeleteImage(ctx context.Context, userID, imageID uuid.UUID) error {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if image == nil || image.UserID != userID {
		return utils.ErrImageNotFound
	}
	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
