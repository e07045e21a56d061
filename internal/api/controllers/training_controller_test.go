package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"artify/internal/models/request_models"
	"artify/pkg/utils"
)

type stubTrainingService struct {
	err    error
	called bool
}

func (s *stubTrainingService) StartTraining(ctx context.Context, userID uuid.UUID, req request_models.StartTrainingRequest) error {
	s.called = true
	return s.err
}

func postTrainForm(t *testing.T, svc *stubTrainingService, form url.Values, userID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/train", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		NewTrainingController(svc).Train(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/train", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrain_Success(t *testing.T) {
	svc := &stubTrainingService{}
	w := postTrainForm(t, svc, url.Values{
		"fileKey":   {"training_data/u/1_a.zip"},
		"modelName": {"My Model"},
		"gender":    {"man"},
	}, uuid.NewString())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.True(t, svc.called)
}

func TestTrain_MissingFields(t *testing.T) {
	svc := &stubTrainingService{}
	w := postTrainForm(t, svc, url.Values{"gender": {"man"}}, uuid.NewString())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required files!"}`, w.Body.String())
	assert.False(t, svc.called)
}

func TestTrain_NoCredits(t *testing.T) {
	svc := &stubTrainingService{err: utils.ErrInsufficientCredits}
	w := postTrainForm(t, svc, url.Values{
		"fileKey":   {"a.zip"},
		"modelName": {"m"},
	}, uuid.NewString())

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"error":"No credits left for training"}`, w.Body.String())
}

func TestTrain_MissingLedger(t *testing.T) {
	svc := &stubTrainingService{err: utils.ErrCreditRowMissing}
	w := postTrainForm(t, svc, url.Values{
		"fileKey":   {"a.zip"},
		"modelName": {"m"},
	}, uuid.NewString())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error getting user credits!"}`, w.Body.String())
}

func TestTrain_GenericFailure(t *testing.T) {
	svc := &stubTrainingService{err: errors.New("provider exploded")}
	w := postTrainForm(t, svc, url.Values{
		"fileKey":   {"a.zip"},
		"modelName": {"m"},
	}, uuid.NewString())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to start training!"}`, w.Body.String())
}

func TestTrain_Unauthenticated(t *testing.T) {
	svc := &stubTrainingService{}
	w := postTrainForm(t, svc, url.Values{
		"fileKey":   {"a.zip"},
		"modelName": {"m"},
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, svc.called)
}
