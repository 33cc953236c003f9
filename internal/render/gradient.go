package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// tierStyle maps a minimum rating to the fill stops for the rating readout.
// One stop means a flat fill; several mean a vertical gradient.
type tierStyle struct {
	threshold float64
	stops     []gg.RGBA
}

// ratingTiers is ordered by descending threshold; the first tier the rating
// meets wins. The top tier is the only multi-stop one.
var ratingTiers = []tierStyle{
	{15.00, []gg.RGBA{gg.Hex("#f54545"), gg.Hex("#ffd700"), gg.Hex("#45d8f5")}},
	{14.50, []gg.RGBA{gg.Hex("#e5e4e2")}},
	{14.00, []gg.RGBA{gg.Hex("#ffd700")}},
	{13.00, []gg.RGBA{gg.Hex("#c0c0c0")}},
	{12.00, []gg.RGBA{gg.Hex("#cd7f32")}},
	{10.00, []gg.RGBA{gg.Hex("#9021f5")}},
	{7.00, []gg.RGBA{gg.Hex("#f54521")}},
	{4.00, []gg.RGBA{gg.Hex("#f5a821")}},
	{2.00, []gg.RGBA{gg.Hex("#41a147")}},
}

// cyan floor for everything below the green tier
var baseTierStops = []gg.RGBA{gg.Hex("#21c9f5")}

// TierStops returns the fill stops for a rating value.
func TierStops(rating float64) []gg.RGBA {
	for _, t := range ratingTiers {
		if rating >= t.threshold {
			return t.stops
		}
	}
	return baseTierStops
}

var outlineColor = gg.RGB(0.08, 0.08, 0.10)

// eight single-pixel offsets for the outline pass
var outlineOffsets = [8][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// GradientText renders s centered into a transparent width x height layer:
// a dark outline pass offset in eight directions underneath a fill pass
// colored by a vertical blend of the given stops.
func GradientText(face text.Face, s string, width, height int, stops []gg.RGBA) image.Image {
	cx := float64(width) / 2
	cy := float64(height) / 2

	// Outline pass on its own layer.
	dc := gg.NewContext(width, height)
	dc.SetFont(face)
	dc.SetColor(outlineColor)
	for _, off := range outlineOffsets {
		dc.DrawStringAnchored(s, cx+off[0], cy+off[1], 0.5, 0.5)
	}

	// Fill pass: white text used as an alpha mask for the gradient.
	mc := gg.NewContext(width, height)
	mc.SetFont(face)
	mc.SetColor(gg.White)
	mc.DrawStringAnchored(s, cx, cy, 0.5, 0.5)

	grad := gg.NewLinearGradientBrush(0, 0, 0, float64(height))
	if len(stops) == 1 {
		grad.AddColorStop(0, stops[0])
		grad.AddColorStop(1, stops[0])
	} else {
		last := float64(len(stops) - 1)
		for i, c := range stops {
			grad.AddColorStop(float64(i)/last, c)
		}
	}

	mask := mc.Image()
	fill := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		col := grad.ColorAt(0, float64(y))
		for x := 0; x < width; x++ {
			_, _, _, a := mask.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			fill.SetNRGBA(x, y, color.NRGBA{
				R: uint8(col.R*255 + 0.5),
				G: uint8(col.G*255 + 0.5),
				B: uint8(col.B*255 + 0.5),
				A: uint8(a >> 8),
			})
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Over)
	draw.Draw(out, out.Bounds(), fill, image.Point{}, draw.Over)
	return out
}
