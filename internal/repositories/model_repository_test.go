package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artify/internal/models/db_models"
)

func TestModelRepositoryJobTokenLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewModelRepository(db)
	userID := uuid.New()

	row := &db_models.Model{
		ModelID:        "user_123_my-model",
		UserID:         userID,
		JobToken:       "tok_abc",
		ModelName:      "My Model",
		TrainingStatus: db_models.TrainingStatusStarting,
	}
	require.NoError(t, repo.Insert(context.Background(), row))

	got, err := repo.FindByJobToken(context.Background(), "tok_abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, row.ModelID, got.ModelID)

	missing, err := repo.FindByJobToken(context.Background(), "tok_nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestModelRepositoryRetrainSameName(t *testing.T) {
	// Two rows with the same user and model name must stay distinguishable
	// through their job tokens.
	db := newTestDB(t)
	repo := NewModelRepository(db)
	userID := uuid.New()

	for _, tok := range []string{"tok_1", "tok_2"} {
		require.NoError(t, repo.Insert(context.Background(), &db_models.Model{
			UserID:         userID,
			JobToken:       tok,
			ModelName:      "My Model",
			TrainingStatus: db_models.TrainingStatusStarting,
		}))
	}

	first, err := repo.FindByJobToken(context.Background(), "tok_1")
	require.NoError(t, err)
	second, err := repo.FindByJobToken(context.Background(), "tok_2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestModelRepositoryStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	repo := NewModelRepository(db)

	row := &db_models.Model{
		UserID:         uuid.New(),
		JobToken:       "tok_1",
		TrainingStatus: db_models.TrainingStatusStarting,
	}
	require.NoError(t, repo.Insert(context.Background(), row))

	require.NoError(t, repo.UpdateSucceeded(context.Background(), row.ID, 512.5, "abcdef123"))

	got, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.TrainingStatusSucceeded, got.TrainingStatus)
	assert.Equal(t, "abcdef123", got.Version)
	assert.InDelta(t, 512.5, got.TrainingTime, 0.001)
}

func TestModelRepositoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewModelRepository(db)
	userID := uuid.New()

	older := &db_models.Model{UserID: userID, JobToken: "tok_old", ModelName: "old"}
	require.NoError(t, repo.Insert(context.Background(), older))
	require.NoError(t, db.Model(older).UpdateColumn("created_at", 100).Error)

	newer := &db_models.Model{UserID: userID, JobToken: "tok_new", ModelName: "new"}
	require.NoError(t, repo.Insert(context.Background(), newer))
	require.NoError(t, db.Model(newer).UpdateColumn("created_at", 200).Error)

	models, count, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, "new", models[0].ModelName)
	assert.Equal(t, "old", models[1].ModelName)
}
