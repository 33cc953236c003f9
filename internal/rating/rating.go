// Package rating derives chart constants and achievement tiers from raw
// score records.
package rating

import "math"

// Score band edges for the constant derivation.
const (
	bandSSSPlus = 1007500
	bandSSS     = 1000000
	bandSS      = 990000
	bandS       = 970000
	bandAA      = 900000
	bandBBB     = 800000
)

// Constant derives the difficulty constant from a score and the fixed-point
// (x100) rating earned on the chart. The bonus is piecewise-linear over the
// score bands and is subtracted from the decimal rating; below 970,000 the
// bonus goes negative, so the derived constant exceeds the rating. Adjacent
// interpolated bands meet exactly at their shared edge.
//
// The result is rounded to the nearest 0.1 using round-half-to-even, the
// same convention the upstream data pipeline applies.
func Constant(score, rating int) float64 {
	r := float64(rating) / 100

	var bonus float64
	switch {
	case score >= bandSSSPlus:
		bonus = 2.00
	case score >= bandSSS:
		bonus = 1.50 + float64(score-bandSSS)/7500*0.50
	case score >= bandSS:
		bonus = 1.00 + float64(score-bandSS)/10000*0.50
	case score >= bandS:
		bonus = float64(score-bandS) / 20000
	case score >= bandAA:
		bonus = -4.00 + float64(score-bandAA)/70000*4.00
	case score >= bandBBB:
		bonus = -6.00 + float64(score-bandBBB)/100000*2.00
	default:
		return math.RoundToEven(r*10) / 10
	}

	return math.RoundToEven((r-bonus)*10) / 10
}
