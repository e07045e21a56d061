package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"artify/internal/models/db_models"
	"artify/internal/repositories"
	"artify/pkg/utils"
)

const testWebhookKey = "supersecretsigningkey"

func testWebhookSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString([]byte(testWebhookKey))
}

func signDelivery(id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookKey))
	mac.Write([]byte(id + "." + timestamp + "." + string(body)))
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func seedTrainingModel(t *testing.T, db *gorm.DB, userID uuid.UUID) *db_models.Model {
	t.Helper()

	model := &db_models.Model{
		ModelID:        userID.String() + "_1700000000000_my-model",
		UserID:         userID,
		JobToken:       uuid.NewString(),
		Gender:         "man",
		ModelName:      "My Model",
		TrainingStatus: db_models.TrainingStatusProcessing,
		TriggerWord:    "nazx",
		TrainingSteps:  1200,
		TrainingID:     "train_abc",
		FileKey:        userID.String() + "/123_photos.zip",
	}
	require.NoError(t, db.Create(model).Error)
	return model
}

func newWebhookFixture(t *testing.T, db *gorm.DB, provider *fakeProvider, store *fakeStore, mail *fakeMail) WebhookServiceInterface {
	t.Helper()
	return NewWebhookService(
		db,
		repositories.NewAccountRepository(db),
		repositories.NewModelRepository(db),
		repositories.NewCreditRepository(db),
		repositories.NewWebhookDeliveryRepository(db),
		store,
		provider,
		mail,
		testLogger(),
	)
}

func signedCallback(model *db_models.Model, deliveryID string, body []byte) TrainingCallback {
	return TrainingCallback{
		DeliveryID:      deliveryID,
		Timestamp:       "1700000001",
		SignatureHeader: signDelivery(deliveryID, "1700000001", body),
		JobToken:        model.JobToken,
		Body:            body,
	}
}

func TestProcessTrainingCallback_Succeeded(t *testing.T) {
	db := newTestDB(t)
	userID := seedAccount(t, db, 0)
	model := seedTrainingModel(t, db, userID)
	provider := &fakeProvider{secret: testWebhookSecret()}
	store := &fakeStore{}
	mail := &fakeMail{}
	svc := newWebhookFixture(t, db, provider, store, mail)

	body := []byte(`{"status":"succeeded","metrics":{"total_time":1042.5},"output":{"version":"artify/` +
		model.ModelID + `:abcdef123456"}}`)
	err := svc.ProcessTrainingCallback(context.Background(), signedCallback(model, "msg_1", body))
	require.NoError(t, err)

	var updated db_models.Model
	require.NoError(t, db.First(&updated, "id = ?", model.ID).Error)
	assert.Equal(t, db_models.TrainingStatusSucceeded, updated.TrainingStatus)
	assert.Equal(t, "abcdef123456", updated.Version)
	assert.InDelta(t, 1042.5, updated.TrainingTime, 0.001)

	assert.Equal(t, []string{"Model training completed!"}, mail.sent)
	assert.Equal(t, []string{model.FileKey}, store.deleted)

	// Success never refunds.
	var credits db_models.CreditLedger
	require.NoError(t, db.First(&credits, "user_id = ?", userID).Error)
	assert.Equal(t, 0, credits.ModelTrainingCount)
}

func TestProcessTrainingCallback_FailedRefundsCredit(t *testing.T) {
	db := newTestDB(t)
	userID := seedAccount(t, db, 0)
	model := seedTrainingModel(t, db, userID)
	provider := &fakeProvider{secret: testWebhookSecret()}
	store := &fakeStore{}
	mail := &fakeMail{}
	svc := newWebhookFixture(t, db, provider, store, mail)

	body := []byte(`{"status":"failed"}`)
	err := svc.ProcessTrainingCallback(context.Background(), signedCallback(model, "msg_2", body))
	require.NoError(t, err)

	var updated db_models.Model
	require.NoError(t, db.First(&updated, "id = ?", model.ID).Error)
	assert.Equal(t, db_models.TrainingStatusFailed, updated.TrainingStatus)

	var credits db_models.CreditLedger
	require.NoError(t, db.First(&credits, "user_id = ?", userID).Error)
	assert.Equal(t, 1, credits.ModelTrainingCount)

	assert.Equal(t, []string{"Model training failed"}, mail.sent)
	assert.Equal(t, []string{model.FileKey}, store.deleted)
}

func TestProcessTrainingCallback_DuplicateDeliveryRefundsOnce(t *testing.T) {
	db := newTestDB(t)
	userID := seedAccount(t, db, 0)
	model := seedTrainingModel(t, db, userID)
	provider := &fakeProvider{secret: testWebhookSecret()}
	mail := &fakeMail{}
	svc := newWebhookFixture(t, db, provider, &fakeStore{}, mail)

	body := []byte(`{"status":"canceled"}`)
	cb := signedCallback(model, "msg_3", body)

	require.NoError(t, svc.ProcessTrainingCallback(context.Background(), cb))
	require.NoError(t, svc.ProcessTrainingCallback(context.Background(), cb))

	var credits db_models.CreditLedger
	require.NoError(t, db.First(&credits, "user_id = ?", userID).Error)
	assert.Equal(t, 1, credits.ModelTrainingCount)
	assert.Len(t, mail.sent, 1)
}

func TestProcessTrainingCallback_IntermediateStatus(t *testing.T) {
	db := newTestDB(t)
	userID := seedAccount(t, db, 0)
	model := seedTrainingModel(t, db, userID)
	provider := &fakeProvider{secret: testWebhookSecret()}
	store := &fakeStore{}
	mail := &fakeMail{}
	svc := newWebhookFixture(t, db, provider, store, mail)

	body := []byte(`{"status":"processing"}`)
	err := svc.ProcessTrainingCallback(context.Background(), signedCallback(model, "msg_4", body))
	require.NoError(t, err)

	var credits db_models.CreditLedger
	require.NoError(t, db.First(&credits, "user_id = ?", userID).Error)
	assert.Equal(t, 0, credits.ModelTrainingCount)
	assert.Empty(t, mail.sent)
	assert.Empty(t, store.deleted)
}

func TestProcessTrainingCallback_BadSignature(t *testing.T) {
	db := newTestDB(t)
	userID := seedAccount(t, db, 0)
	model := seedTrainingModel(t, db, userID)
	provider := &fakeProvider{secret: testWebhookSecret()}
	svc := newWebhookFixture(t, db, provider, &fakeStore{}, &fakeMail{})

	body := []byte(`{"status":"succeeded"}`)
	cb := signedCallback(model, "msg_5", body)
	cb.SignatureHeader = "v1,AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

	err := svc.ProcessTrainingCallback(context.Background(), cb)
	require.ErrorIs(t, err, utils.ErrSignatureInvalid)

	var updated db_models.Model
	require.NoError(t, db.First(&updated, "id = ?", model.ID).Error)
	assert.Equal(t, db_models.TrainingStatusProcessing, updated.TrainingStatus)
}

func TestProcessTrainingCallback_UnknownJobToken(t *testing.T) {
	db := newTestDB(t)
	userID := seedAccount(t, db, 0)
	model := seedTrainingModel(t, db, userID)
	provider := &fakeProvider{secret: testWebhookSecret()}
	svc := newWebhookFixture(t, db, provider, &fakeStore{}, &fakeMail{})

	body := []byte(`{"status":"succeeded"}`)
	cb := signedCallback(model, "msg_6", body)
	cb.JobToken = uuid.NewString()

	err := svc.ProcessTrainingCallback(context.Background(), cb)
	require.ErrorIs(t, err, utils.ErrModelNotFound)

	// A rejected delivery must not occupy the dedup slot; a retry with a
	// valid token has to still go through.
	var count int64
	require.NoError(t, db.Model(&db_models.WebhookDelivery{}).Count(&count).Error)
	assert.Zero(t, count)
}
