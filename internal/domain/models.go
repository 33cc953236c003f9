package domain

import "fmt"

// Difficulty is the chart difficulty code as delivered by the score source.
type Difficulty int

const (
	DifficultyBasic    Difficulty = 0
	DifficultyAdvanced Difficulty = 1
	DifficultyExpert   Difficulty = 2
	DifficultyMaster   Difficulty = 3
	DifficultyLunatic  Difficulty = 10
)

// Name returns the lowercase asset name for the difficulty. Unknown codes
// map to "master", which is what the upstream site serves for them.
func (d Difficulty) Name() string {
	switch d {
	case DifficultyBasic:
		return "basic"
	case DifficultyAdvanced:
		return "advanced"
	case DifficultyExpert:
		return "expert"
	case DifficultyMaster:
		return "master"
	case DifficultyLunatic:
		return "lunatic"
	default:
		return "master"
	}
}

// Label returns the display name for the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBasic:
		return "BASIC"
	case DifficultyAdvanced:
		return "ADVANCED"
	case DifficultyExpert:
		return "EXPERT"
	case DifficultyMaster:
		return "MASTER"
	case DifficultyLunatic:
		return "LUNATIC"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(d))
	}
}

// ScoreEntry is one played chart contributing to the player's rating.
// Rating is fixed-point x100 as delivered by the source; Constant is derived
// once at load time and never mutated afterwards.
type ScoreEntry struct {
	SongID     int
	Title      string
	Difficulty Difficulty
	Score      int
	Rating     int
	Constant   float64
}

// RatingValue returns the decimal form of the fixed-point rating.
func (e ScoreEntry) RatingValue() float64 {
	return float64(e.Rating) / 100
}

// PlayerProfile is the optional banner data drawn above the score grid.
type PlayerProfile struct {
	DisplayName string
	Level       int
	Rating      float64
	AvatarPath  string
}

// RecordSet is the validated input handed to the renderer: three score lists
// plus the aggregate ratings already converted to decimal form.
type RecordSet struct {
	Best   []ScoreEntry
	New    []ScoreEntry
	Recent []ScoreEntry

	BestRating    float64
	NewRating     float64
	RecentRating  float64
	OverallRating float64
}
