package rating

// Rank is a score-threshold achievement tier.
type Rank struct {
	Name      string
	Threshold int
}

// rankTable is ordered by descending threshold; selection scans top-down and
// picks the first threshold the score meets or exceeds, so a score exactly
// on a boundary gets the higher tier.
var rankTable = []Rank{
	{"sssplus", 1007500},
	{"sss", 1000000},
	{"ss", 990000},
	{"s", 970000},
	{"aaa", 940000},
	{"aa", 900000},
	{"a", 850000},
	{"bbb", 800000},
	{"bb", 750000},
	{"b", 700000},
	{"c", 500000},
	{"d", 0},
}

// RankForScore returns the rank tier achieved by the score.
func RankForScore(score int) Rank {
	for _, r := range rankTable {
		if score >= r.Threshold {
			return r
		}
	}
	return rankTable[len(rankTable)-1]
}

// Ranks returns the full tier table in descending threshold order.
func Ranks() []Rank {
	out := make([]Rank, len(rankTable))
	copy(out, rankTable)
	return out
}
