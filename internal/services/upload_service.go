package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"artify/internal/models/response_models"
	"artify/pkg/storage"
)

const uploadURLTTL = 15 * time.Minute

type UploadServiceInterface interface {
	// CreateUploadURL issues a write-once URL for a training archive. It
	// reports failure as a message in the response rather than an error,
	// matching the form client's contract.
	CreateUploadURL(ctx context.Context, userID uuid.UUID, fileName string) *response_models.UploadURLResponse
}

type uploadService struct {
	store  storage.ObjectStore
	logger *zap.Logger
}

func NewUploadService(store storage.ObjectStore, logger *zap.Logger) UploadServiceInterface {
	return &uploadService{store: store, logger: logger}
}

func (s *uploadService) CreateUploadURL(ctx context.Context, userID uuid.UUID, fileName string) *response_models.UploadURLResponse {
	// Namespaced by user and millisecond timestamp so repeated uploads of
	// the same archive name never collide.
	key := fmt.Sprintf("%s/%d_%s", userID, time.Now().UnixMilli(), fileName)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	url, err := s.store.PresignPut(ctx, key, uploadURLTTL)
	if err != nil {
		s.logger.Error("issuing upload url", zap.String("key", key), zap.Error(err))
		return &response_models.UploadURLResponse{SignedURL: "", Error: err.Error()}
	}
	return &response_models.UploadURLResponse{SignedURL: url, FileKey: key}
}
