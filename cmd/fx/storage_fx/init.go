package storage_fx

import (
	"go.uber.org/fx"

	"artify/internal/config"
	"artify/pkg/storage"
)

var Module = fx.Provide(
	provideObjectStore)

func provideObjectStore(cfg *config.Config) (storage.ObjectStore, error) {
	return storage.NewMinioStore(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
		cfg.MinioUseSSL,
	)
}
