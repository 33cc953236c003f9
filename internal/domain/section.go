package domain

import "sort"

// Per-section entry caps. Together they bound the grid at 55 cells.
const (
	MaxBestEntries   = 30
	MaxNewEntries    = 15
	MaxRecentEntries = 10
)

// Section labels in draw order.
const (
	SectionBest   = "RATING (BEST)"
	SectionNew    = "RATING (NEW)"
	SectionRecent = "RATING (RECENT)"
)

// Section is one ordered grouping of score entries with its aggregate rating.
type Section struct {
	Label           string
	Entries         []ScoreEntry
	AggregateRating float64
}

// NewSection drops zero-rating entries, orders the rest by rating descending
// and truncates to maxEntries. The sort is stable so entries tied on rating
// keep their source order.
func NewSection(label string, entries []ScoreEntry, aggregate float64, maxEntries int) Section {
	kept := make([]ScoreEntry, 0, len(entries))
	for _, e := range entries {
		if e.Rating > 0 {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Rating > kept[j].Rating
	})
	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}
	return Section{Label: label, Entries: kept, AggregateRating: aggregate}
}

// Sections builds the three fixed sections from a record set, in draw order.
func (rs *RecordSet) Sections() []Section {
	return []Section{
		NewSection(SectionBest, rs.Best, rs.BestRating, MaxBestEntries),
		NewSection(SectionNew, rs.New, rs.NewRating, MaxNewEntries),
		NewSection(SectionRecent, rs.Recent, rs.RecentRating, MaxRecentEntries),
	}
}

// AssetIDs returns every asset the sections reference, deduplicated, for
// batch warm-up before drawing. rankFor maps a score to its rank badge key.
func AssetIDs(sections []Section, rankFor func(score int) string) []AssetID {
	seen := make(map[AssetID]struct{})
	var ids []AssetID
	add := func(id AssetID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	add(FallbackCoverAsset())
	for _, s := range sections {
		for _, e := range s.Entries {
			add(CoverAsset(e.SongID))
			add(DifficultyAsset(e.Difficulty))
			add(RankAsset(rankFor(e.Score)))
		}
	}
	return ids
}
