package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SCORES_PATH", "PROFILE_PATH", "OUTPUT_PATH", "ASSET_DIR",
		"FONT_PATH", "COVER_BASE_URL", "IMAGE_BASE_URL", "LOG_LEVEL",
		"PRELOAD_DEADLINE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScoresPath != "b50.json" {
		t.Errorf("ScoresPath = %q, want b50.json", cfg.ScoresPath)
	}
	if cfg.OutputPath != "b55_gram.png" {
		t.Errorf("OutputPath = %q, want b55_gram.png", cfg.OutputPath)
	}
	if cfg.AssetDir != "assets" {
		t.Errorf("AssetDir = %q, want assets", cfg.AssetDir)
	}
	if cfg.PreloadDeadline != 60*time.Second {
		t.Errorf("PreloadDeadline = %v, want 60s", cfg.PreloadDeadline)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCORES_PATH", "scores/latest.json")
	t.Setenv("ASSET_DIR", "/var/cache/otogram")
	t.Setenv("PRELOAD_DEADLINE", "90s")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScoresPath != "scores/latest.json" {
		t.Errorf("ScoresPath = %q", cfg.ScoresPath)
	}
	if cfg.AssetDir != "/var/cache/otogram" {
		t.Errorf("AssetDir = %q", cfg.AssetDir)
	}
	if cfg.PreloadDeadline != 90*time.Second {
		t.Errorf("PreloadDeadline = %v, want 90s", cfg.PreloadDeadline)
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duration syntax", "2m", 2 * time.Minute},
		{"bare seconds", "45", 45 * time.Second},
		{"garbage falls back", "soon", 30 * time.Second},
		{"unset falls back", "", 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getDurationEnv("TEST_DURATION", 30*time.Second); got != tt.want {
				t.Errorf("getDurationEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
