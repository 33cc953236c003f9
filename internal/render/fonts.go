package render

import (
	"fmt"
	"os"

	"otogram/internal/config"

	"github.com/gogpu/gg/text"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"
)

// CJK-capable system fonts probed when no font is configured, in order.
var defaultFontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"C:\\Windows\\Fonts\\msyh.ttc",
}

// TextShaper owns the font faces the compositor draws with. A configured
// font that cannot be loaded is a fatal error; with no configuration it
// probes known system fonts and finally falls back to the embedded Go
// Regular face, so a usable face always exists.
type TextShaper struct {
	source *text.FontSource

	Body    text.Face
	Title   text.Face
	Profile text.Face
	Rating  text.Face
}

func NewTextShaper(cfg *config.Config, logger zerolog.Logger) (*TextShaper, error) {
	source, err := openFontSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &TextShaper{
		source:  source,
		Body:    source.Face(BodyFontSize),
		Title:   source.Face(TitleFontSize),
		Profile: source.Face(ProfileFontSize),
		Rating:  source.Face(RatingFontSize),
	}, nil
}

func openFontSource(cfg *config.Config, logger zerolog.Logger) (*text.FontSource, error) {
	if cfg.FontPath != "" {
		source, err := text.NewFontSourceFromFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configured font %s: %w", cfg.FontPath, err)
		}
		logger.Info().Str("font", cfg.FontPath).Msg("font loaded")
		return source, nil
	}

	for _, path := range defaultFontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		source, err := text.NewFontSourceFromFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("font", path).Msg("system font unusable, trying next")
			continue
		}
		logger.Info().Str("font", path).Msg("system font loaded")
		return source, nil
	}

	logger.Warn().Msg("no CJK system font found, using embedded Go Regular")
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded fallback font: %w", err)
	}
	return source, nil
}

// Close releases the underlying font source.
func (s *TextShaper) Close() error {
	if s.source != nil {
		return s.source.Close()
	}
	return nil
}
