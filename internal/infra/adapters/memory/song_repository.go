package memory

import (
	"math/rand"
	"sync"

	"github.com/paroles-live/paroles/internal/application/metric"
	"github.com/paroles-live/paroles/internal/domain/models"
)

// SongRepository holds the current song catalog. Single writer (the
// library scanner replaces the whole set), many concurrent readers.
type SongRepository interface {
	All() []models.Song
	ByID(id string) (models.Song, bool)
	Random() (models.Song, bool)
	Replace(songs []models.Song)
	Len() int
}

type songRepository struct {
	// songs is replaced wholesale, never mutated in place, so readers
	// holding a snapshot never observe a half-built catalog.
	songs []models.Song

	mu sync.RWMutex
}

func NewSongRepository() SongRepository {
	return &songRepository{}
}

func (r *songRepository) All() []models.Song {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.songs
}

func (r *songRepository) ByID(id string) (models.Song, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, song := range r.songs {
		if song.ID == id {
			return song, true
		}
	}

	return models.Song{}, false
}

func (r *songRepository) Random() (models.Song, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.songs) == 0 {
		return models.Song{}, false
	}

	return r.songs[rand.Intn(len(r.songs))], true
}

func (r *songRepository) Replace(songs []models.Song) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.songs = songs

	metric.SetCatalogSongs(len(songs))
}

func (r *songRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.songs)
}
