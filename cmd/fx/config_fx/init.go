package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"artify/internal/config"
	"artify/pkg/utils"
)

var Module = fx.Provide(
	config.Load, provideLogger, provideTokenIssuer)

func provideLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
}
