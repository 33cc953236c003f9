package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ScoresPath  string
	ProfilePath string
	OutputPath  string
	AssetDir    string
	FontPath    string

	CoverBaseURL string
	ImageBaseURL string

	LogLevel        string
	PreloadDeadline time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ScoresPath:      getEnv("SCORES_PATH", "b50.json"),
		ProfilePath:     getEnv("PROFILE_PATH", "player_profile.json"),
		OutputPath:      getEnv("OUTPUT_PATH", "b55_gram.png"),
		AssetDir:        getEnv("ASSET_DIR", "assets"),
		FontPath:        getEnv("FONT_PATH", ""),
		CoverBaseURL:    getEnv("COVER_BASE_URL", "https://oss.bemanicn.com/SDDT/cover"),
		ImageBaseURL:    getEnv("IMAGE_BASE_URL", "https://u.otogame.net/img/ongeki"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PreloadDeadline: getDurationEnv("PRELOAD_DEADLINE", 60*time.Second),
	}

	if cfg.AssetDir == "" {
		return nil, fmt.Errorf("ASSET_DIR must not be empty")
	}

	logger.Info().
		Str("scores_path", cfg.ScoresPath).
		Str("output_path", cfg.OutputPath).
		Str("asset_dir", cfg.AssetDir).
		Str("log_level", cfg.LogLevel).
		Dur("preload_deadline", cfg.PreloadDeadline).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

var Module = fx.Provide(Load)
