package models_fx

import (
	"go.uber.org/fx"

	"artify/internal/services"
)

var Module = fx.Provide(
	services.NewModelService)
