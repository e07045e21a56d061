package services

import (
	"context"

	"artify/pkg/replicate"
)

// TrainingProvider is the surface of the remote inference provider the
// services consume; *replicate.Client is the production implementation.
type TrainingProvider interface {
	CreateModel(ctx context.Context, modelID string) error
	CreateTraining(ctx context.Context, modelID, archiveURL, webhookURL string) (*replicate.Training, error)
	ListHardware(ctx context.Context) ([]string, error)
	WebhookSecret(ctx context.Context) (string, error)
	Generate(ctx context.Context, ref string, input map[string]interface{}) ([]string, error)
	DeleteModel(ctx context.Context, modelID string) error
	DeleteModelVersion(ctx context.Context, modelID, version string) error
}
