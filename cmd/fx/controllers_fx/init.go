package controllers_fx

import (
	"go.uber.org/fx"

	"artify/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewUploadController),
	fx.Provide(controllers.NewTrainingController),
	fx.Provide(controllers.NewWebhookController),
	fx.Provide(controllers.NewImageController),
	fx.Provide(controllers.NewModelController),
	fx.Provide(controllers.NewDashboardController))
