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
	mem "artify/pkg/memcache"
	"artify/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

// Credits granted to every new account.
const (
	signupImageCredits = 5
	signupTrainCredits = 1
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, req request_models.SignUpRequest) error
	Login(ctx context.Context, req request_models.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req request_models.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPasswordWithToken(ctx context.Context, req request_models.ConsumeResetTokenRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	creditRepo  repositories.CreditRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
	tokenIssuer *utils.TokenIssuer
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	creditRepo repositories.CreditRepository,
	mailService IMailService,
	resetTokens mem.ResetTokenStore,
	tokenIssuer *utils.TokenIssuer,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		creditRepo:  creditRepo,
		mailService: mailService,
		resetTokens: resetTokens,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, req request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account := &db_models.Account{
		Name:         req.FullName,
		Email:        req.Email,
		PasswordHash: hashed,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.creditRepo.Seed(ctx, account.ID, signupImageCredits, signupTrainCredits); err != nil {
		a.logger.Error("seeding credits", zap.String("user_id", account.ID.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (string, error) {
	account, err := a.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := a.tokenIssuer.Create(account.ID)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}
	return token, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
	}, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) error {
	if err := a.accountRepo.UpdateName(ctx, userID, req.FullName); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, req request_models.ChangePasswordRequest) error {
	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePasswordHash(ctx, userID, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// RequestPasswordReset never reveals whether the email exists; unknown
// addresses are a silent no-op.
func (a *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mailService.SendPasswordReset(ctx, account.Email, token); err != nil {
		a.logger.Error("sending reset mail", zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPasswordWithToken(ctx context.Context, req request_models.ConsumeResetTokenRequest) error {
	email := a.resetTokens.Consume(req.Token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePasswordHash(ctx, account.ID, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
