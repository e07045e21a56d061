package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"artify/internal/models/db_models"
	"artify/pkg/utils"
)

func TestWebhookDeliveryClaim(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookDeliveryRepository(db)

	first := &db_models.WebhookDelivery{
		Provider:   "replicate",
		DeliveryID: "msg_1",
		JobToken:   "tok_1",
		Status:     "succeeded",
		Payload:    datatypes.JSON([]byte(`{"status":"succeeded"}`)),
	}
	require.NoError(t, repo.Claim(context.Background(), first))

	dup := &db_models.WebhookDelivery{
		Provider:   "replicate",
		DeliveryID: "msg_1",
		JobToken:   "tok_1",
		Status:     "succeeded",
	}
	err := repo.Claim(context.Background(), dup)
	assert.ErrorIs(t, err, utils.ErrDuplicateDelivery)
}

func TestWebhookDeliveryClaimDistinctIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookDeliveryRepository(db)

	for _, id := range []string{"msg_1", "msg_2"} {
		require.NoError(t, repo.Claim(context.Background(), &db_models.WebhookDelivery{
			Provider:   "replicate",
			DeliveryID: id,
		}))
	}
}

func TestWebhookDeliveryMarkProcessed(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookDeliveryRepository(db)

	delivery := &db_models.WebhookDelivery{Provider: "replicate", DeliveryID: "msg_1"}
	require.NoError(t, repo.Claim(context.Background(), delivery))
	require.NoError(t, repo.MarkProcessed(context.Background(), delivery))

	var got db_models.WebhookDelivery
	require.NoError(t, db.First(&got, "delivery_id = ?", "msg_1").Error)
	require.NotNil(t, got.ProcessedAt)
	assert.Greater(t, *got.ProcessedAt, int64(0))
}
