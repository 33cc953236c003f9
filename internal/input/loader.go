// Package input reads the pre-validated score and profile documents the
// session collaborator produces and maps them onto domain types.
package input

import (
	"encoding/json"
	"os"

	"otogram/internal/domain"
	"otogram/internal/rating"

	"github.com/rs/zerolog"
)

type wireEntry struct {
	Music struct {
		MusicID int    `json:"music_id"`
		Name    string `json:"name"`
	} `json:"music"`
	Difficulty int `json:"difficulty"`
	Score      int `json:"score"`
	Rating     int `json:"rating"`
}

type wireRecordSet struct {
	Data struct {
		Rating       int         `json:"rating"`
		BestRating   int         `json:"best_rating"`
		NewRating    int         `json:"best_new_rating"`
		RecentRating int         `json:"hot_rating"`
		BestList     []wireEntry `json:"best_rating_list"`
		NewList      []wireEntry `json:"best_new_rating_list"`
		RecentList   []wireEntry `json:"hot_rating_list"`
	} `json:"data"`
}

type wireProfile struct {
	Data struct {
		UserName     string `json:"user_name"`
		Level        int    `json:"level"`
		PlayerRating int    `json:"player_rating"`
		AvatarPath   string `json:"avatar_path"`
	} `json:"data"`
}

// LoadRecordSet reads the score document. A missing or corrupt file yields
// an empty record set with a warning, so a render still produces a canvas.
func LoadRecordSet(path string, logger zerolog.Logger) *domain.RecordSet {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("score document unreadable, rendering empty set")
		return &domain.RecordSet{}
	}

	var wire wireRecordSet
	if err := json.Unmarshal(raw, &wire); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("score document malformed, rendering empty set")
		return &domain.RecordSet{}
	}

	rs := &domain.RecordSet{
		Best:          mapEntries(wire.Data.BestList),
		New:           mapEntries(wire.Data.NewList),
		Recent:        mapEntries(wire.Data.RecentList),
		BestRating:    float64(wire.Data.BestRating) / 100,
		NewRating:     float64(wire.Data.NewRating) / 100,
		RecentRating:  float64(wire.Data.RecentRating) / 100,
		OverallRating: float64(wire.Data.Rating) / 100,
	}

	logger.Info().
		Int("best", len(rs.Best)).
		Int("new", len(rs.New)).
		Int("recent", len(rs.Recent)).
		Float64("overall", rs.OverallRating).
		Msg("score document loaded")
	return rs
}

// mapEntries converts wire entries and annotates each with its derived
// constant; entries are immutable afterwards.
func mapEntries(list []wireEntry) []domain.ScoreEntry {
	out := make([]domain.ScoreEntry, 0, len(list))
	for _, w := range list {
		out = append(out, domain.ScoreEntry{
			SongID:     w.Music.MusicID,
			Title:      w.Music.Name,
			Difficulty: domain.Difficulty(w.Difficulty),
			Score:      w.Score,
			Rating:     w.Rating,
			Constant:   rating.Constant(w.Score, w.Rating),
		})
	}
	return out
}

// LoadProfile reads the optional player profile. Absence is not an error;
// the banner is simply omitted.
func LoadProfile(path string, logger zerolog.Logger) *domain.PlayerProfile {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("profile unreadable, omitting banner")
		}
		return nil
	}

	var wire wireProfile
	if err := json.Unmarshal(raw, &wire); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("profile malformed, omitting banner")
		return nil
	}

	return &domain.PlayerProfile{
		DisplayName: wire.Data.UserName,
		Level:       wire.Data.Level,
		Rating:      float64(wire.Data.PlayerRating) / 100,
		AvatarPath:  wire.Data.AvatarPath,
	}
}
