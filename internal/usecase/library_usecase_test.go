package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/paroles-live/paroles/internal/domain/models"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/infra/adapters/storage"
	"github.com/paroles-live/paroles/internal/usecase"
)

// fakeBackend serves assets from maps, folder -> name -> content.
type fakeBackend struct {
	folders []string
	assets  map[string]map[string]string
	videos  map[string]string
	listErr error
}

func (f *fakeBackend) ListSongFolders(context.Context) ([]string, error) {
	return f.folders, f.listErr
}

func (f *fakeBackend) LocateSubtitleAsset(_ context.Context, folder string) (string, bool) {
	_, ok := f.assets[folder]["subtitles.srt"]
	return "subtitles.srt", ok
}

func (f *fakeBackend) ReadTextAsset(_ context.Context, folder, name string) (string, error) {
	content, ok := f.assets[folder][name]
	if !ok {
		return "", storage.ErrAssetNotFound
	}
	return content, nil
}

func (f *fakeBackend) LocateVideoAsset(_ context.Context, folder string) (string, bool) {
	asset, ok := f.videos[folder]
	return asset, ok
}

func (f *fakeBackend) ResolveVideoURL(folder, asset string) (string, bool) {
	return "/videos/" + folder + "/" + asset, true
}

const threeCueSRT = `1
00:00:10,000 --> 00:00:20,000
Premier couplet

2
00:01:00,000 --> 00:01:30,000
Refrain

3
00:02:30,000 --> 00:03:00,000
Dernier couplet`

func scanOne(t *testing.T, backend storage.Backend) []models.Song {
	t.Helper()

	repo := memory.NewSongRepository()
	library := usecase.NewLibraryUsecase(backend, repo)

	count, scanID, err := library.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if scanID == "" {
		t.Fatal("expected a scan id")
	}
	if count != len(repo.All()) {
		t.Fatalf("count %d disagrees with repository %d", count, len(repo.All()))
	}

	return repo.All()
}

func TestScanDefaultsWithoutConfig(t *testing.T) {
	backend := &fakeBackend{
		folders: []string{"my-song"},
		assets:  map[string]map[string]string{"my-song": {"subtitles.srt": threeCueSRT}},
	}

	songs := scanOne(t, backend)
	if len(songs) != 1 {
		t.Fatalf("expected 1 song, got %d", len(songs))
	}

	song := songs[0]
	if song.ID != "my-song" || song.Folder != "my-song" {
		t.Fatalf("unexpected identity: %+v", song)
	}
	if song.Title != "My Song" {
		t.Fatalf("title fallback: got %q want %q", song.Title, "My Song")
	}
	if song.Artist != models.DefaultArtist {
		t.Fatalf("artist fallback: got %q", song.Artist)
	}
	if song.Difficulty != "medium" {
		t.Fatalf("difficulty fallback: got %q", song.Difficulty)
	}
	if song.Duration != 180 {
		t.Fatalf("duration: got %v want 180", song.Duration)
	}
	if len(song.CutoffWindows) != 1 || song.CutoffWindows[0] != [2]float64{90, 180} {
		t.Fatalf("cutoff windows: got %v want [[90 180]]", song.CutoffWindows)
	}
	if song.SubtitleOffset != 0 {
		t.Fatalf("subtitle offset: got %v", song.SubtitleOffset)
	}
	if song.HasVideo || song.VideoURL != nil {
		t.Fatalf("expected no video: %+v", song)
	}
	if len(song.Lyrics) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(song.Lyrics))
	}
}

func TestScanReadsConfig(t *testing.T) {
	backend := &fakeBackend{
		folders: []string{"my-song"},
		assets: map[string]map[string]string{
			"my-song": {
				"subtitles.srt": threeCueSRT,
				"config.json": `{
					"title": "Vraie Chanson",
					"artist": "Quelqu'un",
					"difficulty": "hard",
					"subtitle_offset": -0.5,
					"cutoff_windows": [[30, 60], [120, 150]]
				}`,
			},
		},
		videos: map[string]string{"my-song": "clip.mp4"},
	}

	songs := scanOne(t, backend)
	song := songs[0]

	if song.Title != "Vraie Chanson" || song.Artist != "Quelqu'un" || song.Difficulty != "hard" {
		t.Fatalf("config not applied: %+v", song)
	}
	if song.SubtitleOffset != -0.5 {
		t.Fatalf("subtitle offset: got %v", song.SubtitleOffset)
	}
	if len(song.CutoffWindows) != 2 || song.CutoffWindows[1] != [2]float64{120, 150} {
		t.Fatalf("explicit windows must be used verbatim: %v", song.CutoffWindows)
	}
	if !song.HasVideo || song.VideoURL == nil || *song.VideoURL != "/videos/my-song/clip.mp4" {
		t.Fatalf("video not resolved: %+v", song)
	}
}

func TestScanLegacyCutoffTime(t *testing.T) {
	backend := &fakeBackend{
		folders: []string{"my-song"},
		assets: map[string]map[string]string{
			"my-song": {
				"subtitles.srt": threeCueSRT,
				"config.json":   `{"cutoff_time": 42}`,
			},
		},
	}

	song := scanOne(t, backend)[0]
	if len(song.CutoffWindows) != 1 || song.CutoffWindows[0] != [2]float64{42, 180} {
		t.Fatalf("legacy cutoff: got %v want [[42 180]]", song.CutoffWindows)
	}
}

func TestScanInvalidConfigDegradesToDefaults(t *testing.T) {
	backend := &fakeBackend{
		folders: []string{"my-song"},
		assets: map[string]map[string]string{
			"my-song": {
				"subtitles.srt": threeCueSRT,
				"config.json":   `{"title": "broken`,
			},
		},
	}

	song := scanOne(t, backend)[0]
	if song.Title != "My Song" || song.Artist != models.DefaultArtist {
		t.Fatalf("expected all defaults for broken config: %+v", song)
	}
}

func TestScanSkipsFoldersWithoutUsableSubtitles(t *testing.T) {
	backend := &fakeBackend{
		folders: []string{"no-srt", "empty-srt", "good"},
		assets: map[string]map[string]string{
			"no-srt":    {},
			"empty-srt": {"subtitles.srt": "garbage without cues"},
			"good":      {"subtitles.srt": threeCueSRT},
		},
	}

	songs := scanOne(t, backend)
	if len(songs) != 1 || songs[0].ID != "good" {
		t.Fatalf("expected only the good folder, got %+v", songs)
	}
}

func TestRefreshFailurePreservesCatalog(t *testing.T) {
	backend := &fakeBackend{
		folders: []string{"my-song"},
		assets:  map[string]map[string]string{"my-song": {"subtitles.srt": threeCueSRT}},
	}

	repo := memory.NewSongRepository()
	library := usecase.NewLibraryUsecase(backend, repo)

	if _, _, err := library.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	backend.listErr = errors.New("bucket unreachable")

	if _, _, err := library.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	if _, ok := repo.ByID("my-song"); !ok {
		t.Fatal("failed refresh must keep the previous catalog")
	}
}
