package domain

import "strconv"

// AssetCategory names one subdirectory of the durable asset store.
type AssetCategory string

const (
	CategoryCover AssetCategory = "cover"
	CategoryDiff  AssetCategory = "diff"
	CategoryRank  AssetCategory = "rank"
)

// Ext returns the file extension used for assets in the category.
func (c AssetCategory) Ext() string {
	if c == CategoryCover {
		return ".webp"
	}
	return ".png"
}

// AssetID identifies one cacheable image: a category plus an opaque key.
type AssetID struct {
	Category AssetCategory
	Key      string
}

func (id AssetID) String() string {
	return string(id.Category) + "/" + id.Key
}

// Filename returns the on-disk name for the asset within its category
// directory.
func (id AssetID) Filename() string {
	return id.Key + id.Category.Ext()
}

// FallbackCoverKey is the key of the guaranteed-available jacket substitute.
const FallbackCoverKey = "fallback"

func CoverAsset(songID int) AssetID {
	return AssetID{Category: CategoryCover, Key: strconv.Itoa(songID)}
}

func FallbackCoverAsset() AssetID {
	return AssetID{Category: CategoryCover, Key: FallbackCoverKey}
}

func DifficultyAsset(d Difficulty) AssetID {
	return AssetID{Category: CategoryDiff, Key: d.Name()}
}

func RankAsset(name string) AssetID {
	return AssetID{Category: CategoryRank, Key: name}
}
