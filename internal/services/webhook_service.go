package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"artify/internal/models/db_models"
	"artify/internal/repositories"
	"artify/pkg/replicate"
	"artify/pkg/storage"
	"artify/pkg/utils"
)

// TrainingCallback is one inbound provider delivery, still unverified.
type TrainingCallback struct {
	DeliveryID      string
	Timestamp       string
	SignatureHeader string
	JobToken        string
	Body            []byte
}

type callbackBody struct {
	Status  string `json:"status"`
	Metrics *struct {
		TotalTime *float64 `json:"total_time"`
	} `json:"metrics,omitempty"`
	Output *struct {
		Version string `json:"version"`
	} `json:"output,omitempty"`
}

type WebhookServiceInterface interface {
	ProcessTrainingCallback(ctx context.Context, cb TrainingCallback) error
}

type webhookService struct {
	db           *gorm.DB
	accountRepo  repositories.AccountRepository
	modelRepo    repositories.ModelRepository
	creditRepo   repositories.CreditRepository
	deliveryRepo repositories.WebhookDeliveryRepository
	store        storage.ObjectStore
	provider     TrainingProvider
	mail         IMailService
	logger       *zap.Logger
}

func NewWebhookService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	modelRepo repositories.ModelRepository,
	creditRepo repositories.CreditRepository,
	deliveryRepo repositories.WebhookDeliveryRepository,
	store storage.ObjectStore,
	provider TrainingProvider,
	mail IMailService,
	logger *zap.Logger,
) WebhookServiceInterface {
	return &webhookService{
		db:           db,
		accountRepo:  accountRepo,
		modelRepo:    modelRepo,
		creditRepo:   creditRepo,
		deliveryRepo: deliveryRepo,
		store:        store,
		provider:     provider,
		mail:         mail,
		logger:       logger,
	}
}

// ProcessTrainingCallback authenticates and reconciles one delivery.
//
// The signature is checked before anything else touches storage. The status
// update, credit refund and dedup mark commit in a single transaction, so a
// redelivered webhook either replays nothing or everything: it can never
// double-refund. Mail and archive deletion run after commit and are best
// effort; a failure there is logged, not surfaced, because surfacing it
// would trigger a redelivery that the dedup row will ignore anyway.
func (s *webhookService) ProcessTrainingCallback(ctx context.Context, cb TrainingCallback) error {
	secretCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()
	secret, err := s.provider.WebhookSecret(secretCtx)
	if err != nil {
		return err
	}

	ok, err := replicate.VerifySignature(secret, cb.DeliveryID, cb.Timestamp, cb.Body, cb.SignatureHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrSignatureInvalid, err)
	}
	if !ok {
		return utils.ErrSignatureInvalid
	}

	var body callbackBody
	if err := json.Unmarshal(cb.Body, &body); err != nil {
		return fmt.Errorf("parsing callback body: %w", err)
	}

	var (
		account       *db_models.Account
		fileKey       string
		subject       string
		message       string
		sendMail      bool
		deleteArchive bool
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		deliveries := s.deliveryRepo.WithTx(tx)
		claimed := &db_models.WebhookDelivery{
			Provider:   "replicate",
			DeliveryID: cb.DeliveryID,
			JobToken:   cb.JobToken,
			Status:     body.Status,
			Payload:    datatypes.JSON(cb.Body),
		}
		if err := deliveries.Claim(ctx, claimed); err != nil {
			return err
		}

		models := s.modelRepo.WithTx(tx)
		model, err := models.FindByJobToken(ctx, cb.JobToken)
		if err != nil {
			return err
		}
		if model == nil {
			return utils.ErrModelNotFound
		}
		fileKey = model.FileKey

		account, err = s.accountRepo.FindByID(ctx, model.UserID)
		if err != nil {
			return err
		}
		if account == nil {
			return utils.ErrAccountNotFound
		}

		status := db_models.TrainingStatus(body.Status)
		switch {
		case status == db_models.TrainingStatusSucceeded:
			version := ""
			if body.Output != nil {
				if _, after, found := strings.Cut(body.Output.Version, ":"); found {
					version = after
				}
			}
			trainingTime := 0.0
			if body.Metrics != nil && body.Metrics.TotalTime != nil {
				trainingTime = *body.Metrics.TotalTime
			}
			if err := models.UpdateSucceeded(ctx, model.ID, trainingTime, version); err != nil {
				return err
			}
			subject = "Model training completed!"
			message = "Your model training has been completed"
			sendMail = true
			deleteArchive = true

		case status.IsTerminal():
			if err := models.UpdateStatus(ctx, model.ID, status); err != nil {
				return err
			}
			// Refund exactly one credit for a job that will never finish.
			// Intermediate statuses never refund; see the default branch.
			if err := s.creditRepo.WithTx(tx).IncrementTraining(ctx, model.UserID); err != nil {
				return err
			}
			subject = fmt.Sprintf("Model training %s", body.Status)
			message = fmt.Sprintf("Your model training has been %s", body.Status)
			sendMail = true
			deleteArchive = true

		default:
			if err := models.UpdateStatus(ctx, model.ID, status); err != nil {
				return err
			}
		}

		return deliveries.MarkProcessed(ctx, claimed)
	})

	if errors.Is(err, utils.ErrDuplicateDelivery) {
		s.logger.Info("duplicate webhook delivery ignored",
			zap.String("delivery_id", cb.DeliveryID))
		return nil
	}
	if err != nil {
		return err
	}

	if sendMail {
		mailCtx, cancel := context.WithTimeout(ctx, providerTimeout)
		defer cancel()
		if err := s.mail.SendTrainingNotification(mailCtx, account.Email, account.Name, subject, message); err != nil {
			s.logger.Error("sending training notification", zap.Error(err))
		}
	}

	if deleteArchive && fileKey != "" {
		delCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s.store.Delete(delCtx, fileKey); err != nil {
			s.logger.Error("deleting training archive",
				zap.String("key", fileKey), zap.Error(err))
		}
	}

	return nil
}
