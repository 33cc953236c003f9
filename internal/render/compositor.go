package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"otogram/internal/domain"
	"otogram/internal/rating"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
)

// Resolver hands the compositor drawable images. It never fails; missing
// assets come back as category fallbacks.
type Resolver interface {
	Resolve(ctx context.Context, id domain.AssetID) image.Image
}

const (
	coverBlurSigma = 4.0
	diffBarWidth   = 5
	cellTextX      = 16
	titleMaxRunes  = 20

	rankBadgeHeight = 24
	rankBadgeInset  = 6

	sectionTitleX   = 10
	aggregateColumn = 620

	avatarX    = 20
	avatarY    = 10
	avatarSize = 100
)

var (
	canvasBackground  = gg.RGB(32.0/255, 32.0/255, 32.0/255)
	cellOverlay       = gg.RGBA2(0, 0, 0, 128.0/255)
	bannerTextColor   = gg.RGB(50.0/255, 50.0/255, 50.0/255)
	bannerGradientTop = gg.Hex("#fff064")
	bannerGradientEnd = gg.Hex("#ffd24d")
	avatarBackground  = gg.RGB(200.0/255, 200.0/255, 200.0/255)
	avatarCircle      = gg.RGB(150.0/255, 150.0/255, 150.0/255)
)

// difficultyColor returns the left-bar color for a difficulty. Unknown
// difficulties get neutral gray.
func difficultyColor(d domain.Difficulty) gg.RGBA {
	switch d {
	case domain.DifficultyBasic:
		return gg.Hex("#41a147")
	case domain.DifficultyAdvanced:
		return gg.Hex("#f5c421")
	case domain.DifficultyExpert:
		return gg.Hex("#f54521")
	case domain.DifficultyMaster:
		return gg.Hex("#9021f5")
	case domain.DifficultyLunatic:
		return gg.Hex("#ffffff")
	default:
		return gg.Hex("#888888")
	}
}

// Compositor draws one render invocation onto a single canvas. Drawing is
// strictly sequential; only asset resolution behind the Resolver is
// concurrent.
type Compositor struct {
	dc     *gg.Context
	assets Resolver
	shaper *TextShaper
	logger zerolog.Logger
}

func NewCompositor(layout Layout, assets Resolver, shaper *TextShaper, logger zerolog.Logger) *Compositor {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.ClearWithColor(canvasBackground)
	return &Compositor{dc: dc, assets: assets, shaper: shaper, logger: logger}
}

// Image returns the composed canvas.
func (c *Compositor) Image() image.Image {
	return c.dc.Image()
}

// DrawCell composites one score cell at the given origin: blurred cover,
// readability overlay, difficulty bar and badge, texts and rank badge.
func (c *Compositor) DrawCell(ctx context.Context, x, y int, e domain.ScoreEntry) {
	fx, fy := float64(x), float64(y)

	c.drawCover(ctx, fx, fy, e)

	c.dc.SetColor(cellOverlay)
	c.dc.DrawRectangle(fx, fy, CellWidth, CellHeight)
	c.dc.Fill()

	c.dc.SetColor(difficultyColor(e.Difficulty))
	c.dc.DrawRectangle(fx, fy, diffBarWidth, CellHeight)
	c.dc.Fill()

	diffIcon := c.assets.Resolve(ctx, domain.DifficultyAsset(e.Difficulty))
	c.dc.DrawImage(gg.ImageBufFromImage(diffIcon), fx+cellTextX, fy+5)

	score := e.Score
	if score < 0 {
		c.logger.Warn().Int("song_id", e.SongID).Int("score", e.Score).Msg("negative score, degrading cell")
		score = 0
	}

	c.dc.SetFont(c.shaper.Body)
	c.dc.SetColor(gg.White)
	textX := fx + cellTextX
	c.dc.DrawString(displayTitle(e.Title), textX, fy+25+BodyFontSize)
	c.dc.DrawString(formatScore(score), textX, fy+45+BodyFontSize)
	c.dc.DrawString(fmt.Sprintf("Base: %.1f -> %.2f", e.Constant, e.RatingValue()), textX, fy+65+BodyFontSize)

	c.drawRankBadge(ctx, fx, fy, score)
}

func (c *Compositor) drawCover(ctx context.Context, fx, fy float64, e domain.ScoreEntry) {
	id := domain.CoverAsset(e.SongID)
	if e.SongID <= 0 {
		id = domain.FallbackCoverAsset()
	}
	cover := c.assets.Resolve(ctx, id)

	// "Cover" semantics: scale by the larger required dimension, then
	// center-crop the overflow. Never letterboxed, never stretched.
	filled := imaging.Fill(cover, CellWidth, CellHeight, imaging.Center, imaging.Lanczos)
	blurred := imaging.Blur(filled, coverBlurSigma)
	c.dc.DrawImage(gg.ImageBufFromImage(blurred), fx, fy)
}

func (c *Compositor) drawRankBadge(ctx context.Context, fx, fy float64, score int) {
	rank := rating.RankForScore(score)
	badge := c.assets.Resolve(ctx, domain.RankAsset(rank.Name))

	b := badge.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	h := float64(rankBadgeHeight)
	w := h * float64(b.Dx()) / float64(b.Dy())
	c.dc.DrawImageEx(gg.ImageBufFromImage(badge), gg.DrawImageOptions{
		X:         fx + CellWidth - rankBadgeInset - w,
		Y:         fy + CellHeight - rankBadgeInset - h,
		DstWidth:  w,
		DstHeight: h,
	})
}

// DrawSectionTitle renders the section label and its aggregate rating at a
// fixed column, not a measured one.
func (c *Compositor) DrawSectionTitle(box SectionBox, label string, aggregate float64) {
	baseline := float64(box.TitleY + TitleFontSize)
	c.dc.SetColor(gg.White)
	c.dc.SetFont(c.shaper.Title)
	c.dc.DrawString(label, sectionTitleX, baseline)
	c.dc.SetFont(c.shaper.Body)
	c.dc.DrawString(fmt.Sprintf("Rating: %.2f", aggregate), aggregateColumn, baseline)
}

// DrawProfile renders the player banner across the top band.
func (c *Compositor) DrawProfile(p domain.PlayerProfile) {
	grad := gg.NewLinearGradientBrush(0, 0, CanvasWidth, 0).
		AddColorStop(0, bannerGradientTop).
		AddColorStop(1, bannerGradientEnd)
	c.dc.SetFillBrush(grad)
	c.dc.DrawRectangle(0, 0, CanvasWidth, ProfileHeight)
	c.dc.Fill()

	c.drawAvatar(p.AvatarPath)

	c.dc.SetColor(bannerTextColor)
	c.dc.SetFont(c.shaper.Profile)
	c.dc.DrawString(fmt.Sprintf("Lv.%d", p.Level), 140, 25+ProfileFontSize)
	c.dc.DrawString(displayTitle(p.DisplayName), 140, 55+ProfileFontSize)
	c.dc.DrawString("RATING", 500, 30+ProfileFontSize)

	layer := GradientText(c.shaper.Rating, fmt.Sprintf("%.2f", p.Rating), 200, 56, TierStops(p.Rating))
	c.dc.DrawImage(gg.ImageBufFromImage(layer), 490, 56)
}

func (c *Compositor) drawAvatar(path string) {
	avatar := c.loadAvatar(path)
	avatar = imaging.Fill(avatar, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	cx := float64(avatarX + avatarSize/2)
	cy := float64(avatarY + avatarSize/2)
	c.dc.DrawCircle(cx, cy, avatarSize/2)
	c.dc.Clip()
	c.dc.DrawImage(gg.ImageBufFromImage(avatar), avatarX, avatarY)
	c.dc.ResetClip()
}

func (c *Compositor) loadAvatar(path string) image.Image {
	if path == "" {
		return defaultAvatar()
	}
	f, err := os.Open(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("avatar unreadable, using default")
		return defaultAvatar()
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("avatar undecodable, using default")
		return defaultAvatar()
	}
	return img
}

// defaultAvatar is a filled circle on a flat gray background.
func defaultAvatar() image.Image {
	dc := gg.NewContext(avatarSize, avatarSize)
	dc.ClearWithColor(avatarBackground)
	dc.SetColor(avatarCircle)
	dc.DrawCircle(avatarSize/2, avatarSize/2, 40)
	dc.Fill()
	return dc.Image()
}

// DrawFooter renders the overall rating line under the last section.
func (c *Compositor) DrawFooter(l Layout, overall float64) {
	c.dc.SetColor(gg.White)
	c.dc.SetFont(c.shaper.Body)
	c.dc.DrawString(fmt.Sprintf("Rating: %.2f", overall), sectionTitleX, float64(l.FooterY+BodyFontSize))
}

// displayTitle truncates to the cell's character budget with an ellipsis
// and substitutes a placeholder for empty titles.
func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Unknown"
	}
	runes := []rune(title)
	if len(runes) <= titleMaxRunes {
		return title
	}
	return string(runes[:titleMaxRunes-2]) + "..."
}

// formatScore groups digits in thousands: 1007500 -> "1,007,500".
func formatScore(score int) string {
	s := fmt.Sprintf("%d", score)
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
