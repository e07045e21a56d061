package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artify/internal/models/db_models"
	"artify/pkg/replicate"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN so every pooled connection in this test sees
	// the same in-memory database; a plain "file::memory:" gives each
	// connection its own empty one.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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

// fakeProvider records calls and returns canned answers.
type fakeProvider struct {
	mu sync.Mutex

	secret   string
	hardware []string

	createModelErr    error
	createTrainingErr error
	generateErr       error
	deleteErr         error

	createdModels    []string
	trainings        []string
	generated        []string
	deletedModels    []string
	deletedVersions  []string
	trainingStatus   string
	generateOutput   []string
	lastTrainingArgs struct {
		archiveURL string
		webhookURL string
	}
}

func (f *fakeProvider) CreateModel(ctx context.Context, modelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createModelErr != nil {
		return f.createModelErr
	}
	f.createdModels = append(f.createdModels, modelID)
	return nil
}

func (f *fakeProvider) CreateTraining(ctx context.Context, modelID, archiveURL, webhookURL string) (*replicate.Training, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createTrainingErr != nil {
		return nil, f.createTrainingErr
	}
	f.trainings = append(f.trainings, modelID)
	f.lastTrainingArgs.archiveURL = archiveURL
	f.lastTrainingArgs.webhookURL = webhookURL
	status := f.trainingStatus
	if status == "" {
		status = "starting"
	}
	return &replicate.Training{ID: "train_" + modelID, Status: status}, nil
}

func (f *fakeProvider) ListHardware(ctx context.Context) ([]string, error) {
	if f.hardware == nil {
		return []string{"gpu-a100-large"}, nil
	}
	return f.hardware, nil
}

func (f *fakeProvider) WebhookSecret(ctx context.Context) (string, error) {
	return f.secret, nil
}

func (f *fakeProvider) Generate(ctx context.Context, ref string, input map[string]interface{}) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	f.generated = append(f.generated, ref)
	return f.generateOutput, nil
}

func (f *fakeProvider) DeleteModel(ctx context.Context, modelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedModels = append(f.deletedModels, modelID)
	return nil
}

func (f *fakeProvider) DeleteModelVersion(ctx context.Context, modelID, version string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedVersions = append(f.deletedVersions, modelID+":"+version)
	return nil
}

// fakeStore hands out deterministic URLs and records deletions.
type fakeStore struct {
	mu      sync.Mutex
	deleted []string
	getErr  error
}

func (f *fakeStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://store.test/put/" + key, nil
}

func (f *fakeStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return "https://store.test/get/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeMail records the notifications it was asked to send.
type fakeMail struct {
	mu       sync.Mutex
	sent     []string
	resets   []string
	sendFail error
}

func (f *fakeMail) SendTrainingNotification(ctx context.Context, to, username, subject, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendFail != nil {
		return f.sendFail
	}
	f.sent = append(f.sent, subject)
	return nil
}

func (f *fakeMail) SendPasswordReset(ctx context.Context, to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, to)
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
