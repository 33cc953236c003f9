package domain_test

import (
	"testing"

	"otogram/internal/domain"

	. "github.com/smartystreets/goconvey/convey"
)

func entry(songID, score, ratingX100 int) domain.ScoreEntry {
	return domain.ScoreEntry{
		SongID:     songID,
		Title:      "song",
		Difficulty: domain.DifficultyMaster,
		Score:      score,
		Rating:     ratingX100,
	}
}

func TestNewSection(t *testing.T) {
	Convey("Given a mixed bag of score entries", t, func() {
		entries := []domain.ScoreEntry{
			entry(1, 990000, 1200),
			entry(2, 1000000, 0),
			entry(3, 980000, 1450),
			entry(4, 950000, -5),
			entry(5, 1007500, 1300),
		}

		s := domain.NewSection(domain.SectionBest, entries, 13.37, domain.MaxBestEntries)

		Convey("Then zero and negative ratings are excluded", func() {
			So(len(s.Entries), ShouldEqual, 3)
			for _, e := range s.Entries {
				So(e.Rating, ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then entries are ordered by rating descending", func() {
			So(s.Entries[0].SongID, ShouldEqual, 3)
			So(s.Entries[1].SongID, ShouldEqual, 5)
			So(s.Entries[2].SongID, ShouldEqual, 1)
		})

		Convey("Then the aggregate carries through", func() {
			So(s.AggregateRating, ShouldEqual, 13.37)
		})
	})

	Convey("Given more entries than the section cap", t, func() {
		var entries []domain.ScoreEntry
		for i := 0; i < 40; i++ {
			entries = append(entries, entry(i+1, 990000, 1000+i))
		}
		s := domain.NewSection(domain.SectionBest, entries, 0, domain.MaxBestEntries)

		Convey("Then the section truncates to its cap, keeping the top", func() {
			So(len(s.Entries), ShouldEqual, domain.MaxBestEntries)
			So(s.Entries[0].Rating, ShouldEqual, 1039)
			So(s.Entries[len(s.Entries)-1].Rating, ShouldEqual, 1010)
		})
	})

	Convey("Given entries tied on rating", t, func() {
		entries := []domain.ScoreEntry{
			entry(10, 990000, 1200),
			entry(20, 995000, 1200),
			entry(30, 980000, 1200),
		}
		s := domain.NewSection(domain.SectionRecent, entries, 0, domain.MaxRecentEntries)

		Convey("Then source order is preserved among ties", func() {
			So(s.Entries[0].SongID, ShouldEqual, 10)
			So(s.Entries[1].SongID, ShouldEqual, 20)
			So(s.Entries[2].SongID, ShouldEqual, 30)
		})
	})
}

func TestSections(t *testing.T) {
	Convey("Given a record set", t, func() {
		rs := &domain.RecordSet{
			Best:         []domain.ScoreEntry{entry(1, 1000000, 1500)},
			New:          []domain.ScoreEntry{entry(2, 990000, 1400)},
			Recent:       []domain.ScoreEntry{entry(3, 970000, 1300)},
			BestRating:   15.0,
			NewRating:    14.0,
			RecentRating: 13.0,
		}

		sections := rs.Sections()

		Convey("Then the three sections come back in draw order", func() {
			So(len(sections), ShouldEqual, 3)
			So(sections[0].Label, ShouldEqual, domain.SectionBest)
			So(sections[1].Label, ShouldEqual, domain.SectionNew)
			So(sections[2].Label, ShouldEqual, domain.SectionRecent)
		})
	})
}

func TestAssetIDs(t *testing.T) {
	Convey("Given sections sharing songs, difficulties and ranks", t, func() {
		rs := &domain.RecordSet{
			Best: []domain.ScoreEntry{
				entry(1, 1000000, 1500),
				entry(1, 1000000, 1400), // duplicate song
				entry(2, 1000000, 1300),
			},
		}
		sections := rs.Sections()
		ids := domain.AssetIDs(sections, func(int) string { return "sss" })

		Convey("Then ids are deduplicated and include the fallback jacket", func() {
			seen := make(map[domain.AssetID]int)
			for _, id := range ids {
				seen[id]++
				So(seen[id], ShouldEqual, 1)
			}
			So(seen[domain.FallbackCoverAsset()], ShouldEqual, 1)
			So(seen[domain.CoverAsset(1)], ShouldEqual, 1)
			So(seen[domain.CoverAsset(2)], ShouldEqual, 1)
			So(seen[domain.DifficultyAsset(domain.DifficultyMaster)], ShouldEqual, 1)
			So(seen[domain.RankAsset("sss")], ShouldEqual, 1)
			So(len(ids), ShouldEqual, 5)
		})
	})
}

func TestDifficultyNames(t *testing.T) {
	Convey("Given the difficulty enumeration", t, func() {
		Convey("Then known codes map to their asset names", func() {
			So(domain.DifficultyBasic.Name(), ShouldEqual, "basic")
			So(domain.DifficultyAdvanced.Name(), ShouldEqual, "advanced")
			So(domain.DifficultyExpert.Name(), ShouldEqual, "expert")
			So(domain.DifficultyMaster.Name(), ShouldEqual, "master")
			So(domain.DifficultyLunatic.Name(), ShouldEqual, "lunatic")
		})

		Convey("Then unknown codes fall back to the master icon", func() {
			So(domain.Difficulty(99).Name(), ShouldEqual, "master")
		})
	})
}
