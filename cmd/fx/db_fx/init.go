package db_fx

import (
	"go.uber.org/fx"

	"artify/internal/infra"
	"artify/internal/repositories"
)

// Repositories are provided here rather than per feature because several
// of them (credits, models) are shared across services.
var Module = fx.Provide(
	infra.InitPostgresql,
	repositories.NewAccountRepository,
	repositories.NewCreditRepository,
	repositories.NewModelRepository,
	repositories.NewImageRepository,
	repositories.NewWebhookDeliveryRepository)
