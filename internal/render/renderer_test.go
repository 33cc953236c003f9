package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"otogram/internal/domain"
	"otogram/internal/service"

	"github.com/rs/zerolog"
)

type stubOrigin struct{}

func (stubOrigin) Fetch(_ context.Context, _ domain.AssetID) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nullStore struct{}

func (nullStore) Load(domain.AssetID) ([]byte, error) { return nil, errStoreMiss }
func (nullStore) Has(domain.AssetID) bool             { return false }
func (nullStore) Save(domain.AssetID, []byte) error   { return nil }

var errStoreMiss = errors.New("store miss")

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	cache := service.NewAssetCache(stubOrigin{}, nullStore{}, zerolog.Nop())
	return NewRenderer(cache, testShaper(t), zerolog.Nop())
}

func sampleRecordSet() *domain.RecordSet {
	mk := func(id, n int) []domain.ScoreEntry {
		out := make([]domain.ScoreEntry, n)
		for i := range out {
			out[i] = domain.ScoreEntry{
				SongID:     id + i,
				Title:      "song",
				Difficulty: domain.DifficultyMaster,
				Score:      1000000,
				Rating:     1400 - i,
				Constant:   14.0,
			}
		}
		return out
	}
	return &domain.RecordSet{
		Best:          mk(100, 7),
		New:           mk(200, 3),
		Recent:        mk(300, 2),
		BestRating:    14.0,
		NewRating:     13.5,
		RecentRating:  13.0,
		OverallRating: 13.8,
	}
}

func TestRenderCanvasSize(t *testing.T) {
	r := newTestRenderer(t)
	rs := sampleRecordSet()

	img := r.Render(context.Background(), rs, nil, time.Second)

	want := ComputeLayout([]int{7, 3, 2}, false)
	b := img.Bounds()
	if b.Dx() != want.Width || b.Dy() != want.Height {
		t.Fatalf("canvas = %dx%d, want %dx%d", b.Dx(), b.Dy(), want.Width, want.Height)
	}
}

func TestRenderWithProfile(t *testing.T) {
	r := newTestRenderer(t)
	rs := sampleRecordSet()
	profile := &domain.PlayerProfile{DisplayName: "YURI", Level: 87, Rating: 15.23}

	img := r.Render(context.Background(), rs, profile, time.Second)

	want := ComputeLayout([]int{7, 3, 2}, true)
	if img.Bounds().Dy() != want.Height {
		t.Fatalf("canvas height = %d, want %d", img.Bounds().Dy(), want.Height)
	}

	// The banner band must not be canvas background anymore.
	r8, g8, _, _ := img.At(CanvasWidth/2, 5).RGBA()
	if r8>>8 == 32 && g8>>8 == 32 {
		t.Error("profile band left at background color")
	}
}

func TestRenderEmptyRecordSet(t *testing.T) {
	r := newTestRenderer(t)

	img := r.Render(context.Background(), &domain.RecordSet{}, nil, time.Second)

	want := ComputeLayout([]int{0, 0, 0}, false)
	if img.Bounds().Dy() != want.Height {
		t.Fatalf("canvas height = %d, want %d", img.Bounds().Dy(), want.Height)
	}
}
