package fx

import (
	"otogram/internal/api"
	"otogram/internal/config"
	"otogram/internal/logger"
	"otogram/internal/render"
	"otogram/internal/repository"
	"otogram/internal/service"

	"go.uber.org/fx"
)

func ProvideOrigin(c *api.OriginClient) service.Origin {
	return c
}

func ProvideStore(s *repository.AssetStore) service.Store {
	return s
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// acquisition tiers
	fx.Provide(api.NewOriginClient),
	fx.Provide(repository.NewAssetStore),
	fx.Provide(ProvideOrigin),
	fx.Provide(ProvideStore),
	fx.Provide(service.NewAssetCache),
	// drawing
	fx.Provide(render.NewTextShaper),
	fx.Provide(render.NewRenderer),
)
