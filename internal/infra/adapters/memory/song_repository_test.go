package memory_test

import (
	"testing"

	"github.com/paroles-live/paroles/internal/domain/models"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/subtitle"
)

func catalog() []models.Song {
	return []models.Song{
		{ID: "my-song", Title: "My Song", Lyrics: []subtitle.Cue{{Start: 0, End: 1, Text: "la"}}},
		{ID: "other", Title: "Other"},
	}
}

func TestSongRepositoryReplaceAndLookup(t *testing.T) {
	repo := memory.NewSongRepository()

	if len(repo.All()) != 0 {
		t.Fatal("expected empty repository")
	}
	if _, ok := repo.ByID("my-song"); ok {
		t.Fatal("expected no song before replace")
	}
	if _, ok := repo.Random(); ok {
		t.Fatal("expected no random song on empty catalog")
	}

	repo.Replace(catalog())

	if got := repo.Len(); got != 2 {
		t.Fatalf("Len: got %d want 2", got)
	}

	song, ok := repo.ByID("my-song")
	if !ok {
		t.Fatal("expected my-song")
	}
	if len(song.Lyrics) != 1 {
		t.Fatalf("lookup must include lyrics, got %+v", song)
	}

	if _, ok := repo.Random(); !ok {
		t.Fatal("expected a random song")
	}
}

func TestSongRepositoryReplaceIsWholesale(t *testing.T) {
	repo := memory.NewSongRepository()
	repo.Replace(catalog())

	repo.Replace([]models.Song{{ID: "only"}})

	if _, ok := repo.ByID("my-song"); ok {
		t.Fatal("old catalog must be gone after replace")
	}
	if got := repo.Len(); got != 1 {
		t.Fatalf("Len: got %d want 1", got)
	}
}
