// Package render turns cached assets and score records into the final
// raster image.
package render

// Canvas geometry. The grid is five cells wide; sections stack vertically
// with a fixed padding band between them.
const (
	CellWidth      = 200
	CellHeight     = 100
	Columns        = 5
	SectionPadding = 30
	ProfileHeight  = 120
	FooterMargin   = 10

	CanvasWidth = CellWidth * Columns
)

// Font sizes in points.
const (
	BodyFontSize    = 14
	TitleFontSize   = 24
	ProfileFontSize = 20
	RatingFontSize  = 36
)

// TitleHeight is the vertical band a section title occupies before its grid.
const TitleHeight = TitleFontSize + 10

// Rows returns how many grid rows a section of the given size needs.
func Rows(count int) int {
	return (count + Columns - 1) / Columns
}

// SectionBox places one section on the canvas.
type SectionBox struct {
	TitleY  int // top of the title band
	GridTop int // top of the first cell row
	Rows    int
}

// Layout is the computed geometry for a whole render. It is a pure function
// of the three section sizes and whether the profile banner is shown.
type Layout struct {
	Width    int
	Height   int
	Profile  bool
	Sections []SectionBox
	FooterY  int // top of the overall-rating footer line
}

// ComputeLayout stacks the profile band, the sections in order and the
// footer line, and derives the total canvas height.
func ComputeLayout(counts []int, withProfile bool) Layout {
	l := Layout{Width: CanvasWidth, Profile: withProfile}

	y := 0
	if withProfile {
		y += ProfileHeight
	}
	for _, count := range counts {
		y += SectionPadding
		box := SectionBox{TitleY: y, Rows: Rows(count)}
		y += TitleHeight
		box.GridTop = y
		y += box.Rows * CellHeight
		l.Sections = append(l.Sections, box)
	}
	l.FooterY = y + 20
	y += SectionPadding + FooterMargin
	l.Height = y
	return l
}

// CellOrigin returns the top-left pixel of cell i within a section grid.
func (b SectionBox) CellOrigin(i int) (x, y int) {
	x = (i % Columns) * CellWidth
	y = b.GridTop + (i/Columns)*CellHeight
	return x, y
}
