// Package service orchestrates asset acquisition across the memory, disk
// and origin tiers.
package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	// Decoders for the formats the origin serves.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"otogram/internal/api"
	"otogram/internal/constants"
	"otogram/internal/domain"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Origin fetches asset bytes from the remote image host.
type Origin interface {
	Fetch(ctx context.Context, id domain.AssetID) ([]byte, error)
}

// Store is the durable disk tier.
type Store interface {
	Load(id domain.AssetID) ([]byte, error)
	Has(id domain.AssetID) bool
	Save(id domain.AssetID, data []byte) error
}

// Tier records where a resolution was satisfied.
type Tier string

const (
	TierMemory   Tier = "memory"
	TierDisk     Tier = "disk"
	TierOrigin   Tier = "origin"
	TierFallback Tier = "fallback"
)

// Placeholder dimensions for assets that cannot be acquired at all.
const (
	fallbackCoverWidth  = 200
	fallbackCoverHeight = 100
	diffIconWidth       = 116
	diffIconHeight      = 15
	rankIconWidth       = 60
	rankIconHeight      = 30
)

// PreloadStats summarizes one batch warm-up.
type PreloadStats struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// AssetCache resolves asset ids to drawable images through the
// memory -> disk -> origin tiers. Resolve never fails: acquisition errors
// degrade to a per-category fallback image. The cache is owned by a single
// render invocation; the memory tier lives and dies with it.
type AssetCache struct {
	origin Origin
	store  Store
	logger zerolog.Logger

	mu  sync.RWMutex
	mem map[domain.AssetID]image.Image

	flight singleflight.Group
}

func NewAssetCache(origin Origin, store Store, logger zerolog.Logger) *AssetCache {
	return &AssetCache{
		origin: origin,
		store:  store,
		logger: logger,
		mem:    make(map[domain.AssetID]image.Image),
	}
}

// Resolve returns a drawable image for the asset id. On acquisition failure
// it returns the category's fallback instead of an error, so callers on the
// draw path never have to handle one.
func (c *AssetCache) Resolve(ctx context.Context, id domain.AssetID) image.Image {
	img, tier, err := c.resolve(ctx, id)
	if err != nil {
		c.logger.Warn().Err(err).Str("asset", id.String()).Msg("asset unavailable, using fallback")
		return c.fallbackFor(ctx, id)
	}
	c.logger.Debug().Str("asset", id.String()).Str("tier", string(tier)).Msg("asset resolved")
	return img
}

// resolve walks the tiers. Concurrent callers for the same id share one
// in-flight acquisition.
func (c *AssetCache) resolve(ctx context.Context, id domain.AssetID) (image.Image, Tier, error) {
	if img, ok := c.memGet(id); ok {
		return img, TierMemory, nil
	}

	type result struct {
		img  image.Image
		tier Tier
	}
	v, err, _ := c.flight.Do(id.String(), func() (interface{}, error) {
		// A concurrent caller may have populated memory while this
		// call waited on the flight group.
		if img, ok := c.memGet(id); ok {
			return result{img, TierMemory}, nil
		}

		if data, err := c.store.Load(id); err == nil {
			img, err := decodeImage(data)
			if err == nil {
				c.memPut(id, img)
				return result{img, TierDisk}, nil
			}
			c.logger.Warn().Err(err).Str("asset", id.String()).Msg("stored asset undecodable, refetching")
		}

		data, err := c.fetchWithRetry(ctx, id)
		if err != nil {
			return nil, err
		}
		img, err := decodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", id, err)
		}
		if err := c.store.Save(id, data); err != nil {
			c.logger.Warn().Err(err).Str("asset", id.String()).Msg("failed to persist asset")
		}
		c.memPut(id, img)
		return result{img, TierOrigin}, nil
	})
	if err != nil {
		return nil, "", err
	}
	r := v.(result)
	return r.img, r.tier, nil
}

// fetchWithRetry performs the origin fetch policy: bounded attempts with
// fibonacci backoff, each under its own timeout. Permanent failures
// short-circuit without retrying.
func (c *AssetCache) fetchWithRetry(ctx context.Context, id domain.AssetID) ([]byte, error) {
	var data []byte
	backoff := retry.WithMaxRetries(constants.MaxFetchAttempts-1, retry.NewFibonacci(constants.RetryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, constants.FetchAttemptTimeout)
		defer cancel()

		b, err := c.origin.Fetch(attemptCtx, id)
		if err != nil {
			if api.IsPermanent(err) {
				return err
			}
			c.logger.Debug().Err(err).Str("asset", id.String()).Msg("transient fetch failure")
			return retry.RetryableError(err)
		}
		data = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Preload warms the cache for ids not already held in memory or on disk,
// using a bounded worker pool. It blocks until every scheduled acquisition
// finishes or the deadline elapses; work still outstanding at the deadline
// is cancelled and left to lazy resolution at draw time. Preload is
// best-effort: rendering succeeds without it.
func (c *AssetCache) Preload(ctx context.Context, ids []domain.AssetID, deadline time.Duration) PreloadStats {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	var (
		mu    sync.Mutex
		stats PreloadStats
	)

	var g errgroup.Group
	g.SetLimit(constants.PreloadWorkers)

	start := time.Now()
	for _, id := range ids {
		if _, ok := c.memGet(id); ok || c.store.Has(id) {
			stats.Skipped++
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				mu.Lock()
				stats.Skipped++
				mu.Unlock()
				return nil
			}
			_, _, err := c.resolve(ctx, id)
			mu.Lock()
			if err != nil {
				stats.Failed++
			} else {
				stats.Succeeded++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	c.logger.Info().
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int("skipped", stats.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("asset preload finished")
	return stats
}

// fallbackFor returns the guaranteed-drawable substitute for the asset's
// category: the fallback jacket for covers, a transparent placeholder for
// icons. The ultimate fallback is a plain dark cell.
func (c *AssetCache) fallbackFor(ctx context.Context, id domain.AssetID) image.Image {
	switch id.Category {
	case domain.CategoryCover:
		if id.Key != domain.FallbackCoverKey {
			if img, _, err := c.resolve(ctx, domain.FallbackCoverAsset()); err == nil {
				return img
			}
		}
		return blankImage(fallbackCoverWidth, fallbackCoverHeight)
	case domain.CategoryDiff:
		return transparentImage(diffIconWidth, diffIconHeight)
	case domain.CategoryRank:
		return transparentImage(rankIconWidth, rankIconHeight)
	default:
		return transparentImage(1, 1)
	}
}

func (c *AssetCache) memGet(id domain.AssetID) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.mem[id]
	return img, ok
}

func (c *AssetCache) memPut(id domain.AssetID, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[id] = img
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// blankImage is an opaque dark block, used when even the fallback jacket
// cannot be acquired.
func blankImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func transparentImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
