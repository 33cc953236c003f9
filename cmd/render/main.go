package main

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"otogram/internal/config"
	fxmodules "otogram/internal/fx"
	"otogram/internal/input"
	"otogram/internal/logger"
	"otogram/internal/render"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runRender),
	).Run()
}

func runRender(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	renderer *render.Renderer,
	shaper *render.TextShaper,
	cfg *config.Config,
	log zerolog.Logger,
) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = logger.SetLevel(lvl)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := renderOnce(cfg, renderer, log); err != nil {
					log.Error().Err(err).Msg("render failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return shaper.Close()
		},
	})
}

func renderOnce(cfg *config.Config, renderer *render.Renderer, log zerolog.Logger) error {
	rs := input.LoadRecordSet(cfg.ScoresPath, log)
	profile := input.LoadProfile(cfg.ProfilePath, log)

	img := renderer.Render(context.Background(), rs, profile, cfg.PreloadDeadline)

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}

	log.Info().Str("output", cfg.OutputPath).Msg("leaderboard image written")
	return nil
}
