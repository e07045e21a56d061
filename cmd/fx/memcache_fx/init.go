package memcache_fx

import (
	"go.uber.org/fx"

	mem "artify/pkg/memcache"
)

var Module = fx.Provide(
	provideResetTokenStore)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens()
}
