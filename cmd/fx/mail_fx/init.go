package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"artify/internal/config"
	"artify/internal/services"
)

var Module = fx.Provide(
	provideMailService)

func provideMailService(cfg *config.Config, logger *zap.Logger) (services.IMailService, error) {
	return services.NewResendMailService(services.MailConfig{
		APIKey:     cfg.ResendAPIKey,
		From:       cfg.MailFrom,
		AppName:    cfg.AppName,
		AppBaseURL: cfg.SiteBaseURL,
	}, logger)
}
