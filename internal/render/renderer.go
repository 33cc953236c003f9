package render

import (
	"context"
	"image"
	"time"

	"otogram/internal/domain"
	"otogram/internal/rating"
	"otogram/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Renderer ties the pipeline together: section building, batch asset
// warm-up, layout and sequential compositing. It owns one AssetCache per
// invocation scope; nothing here is process-global.
type Renderer struct {
	cache  *service.AssetCache
	shaper *TextShaper
	logger zerolog.Logger
}

func NewRenderer(cache *service.AssetCache, shaper *TextShaper, logger zerolog.Logger) *Renderer {
	return &Renderer{cache: cache, shaper: shaper, logger: logger}
}

// Render produces the finished leaderboard raster. Asset trouble degrades
// to fallbacks; Render itself only fails on fatal configuration problems
// surfaced earlier (fonts), so it returns the image unconditionally.
func (r *Renderer) Render(ctx context.Context, rs *domain.RecordSet, profile *domain.PlayerProfile, preloadDeadline time.Duration) image.Image {
	jobID := uuid.New().String()
	logger := r.logger.With().Str("render_id", jobID).Logger()
	ctx = logger.WithContext(ctx)
	start := time.Now()

	sections := rs.Sections()
	counts := make([]int, len(sections))
	for i, s := range sections {
		counts[i] = len(s.Entries)
	}
	logger.Info().Ints("section_sizes", counts).Bool("profile", profile != nil).Msg("render started")

	ids := domain.AssetIDs(sections, func(score int) string {
		return rating.RankForScore(score).Name
	})
	r.cache.Preload(ctx, ids, preloadDeadline)

	layout := ComputeLayout(counts, profile != nil)
	comp := NewCompositor(layout, r.cache, r.shaper, logger)

	if profile != nil {
		comp.DrawProfile(*profile)
	}

	for i, section := range sections {
		box := layout.Sections[i]
		comp.DrawSectionTitle(box, section.Label, section.AggregateRating)
		for j, entry := range section.Entries {
			x, y := box.CellOrigin(j)
			comp.DrawCell(ctx, x, y, entry)
		}
	}

	comp.DrawFooter(layout, rs.OverallRating)

	logger.Info().
		Int("width", layout.Width).
		Int("height", layout.Height).
		Dur("elapsed", time.Since(start)).
		Msg("render finished")
	return comp.Image()
}
