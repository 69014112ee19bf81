//go:build wireinject
// +build wireinject

package di

import (
	"emojidb/internal"
	"emojidb/internal/providers"
	"emojidb/internal/storage"
	"emojidb/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		storage.NewOsFs,
		storage.NewFsSourceFromConfig,
		storage.NewFileStoreFromConfig,
		storage.NewCacheStore,
		storage.NewCompressorFromConfig,
		storage.NewManagerFromConfig,
		internal.NewApp,
	)

	return nil, nil
}
