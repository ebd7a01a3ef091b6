package workspace

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"choropleth-service/internal/choropleth/service"
)

// Store keeps workspaces in memory only; an idle session expires after ttl
// and the least recently used one is evicted past size.
type Store struct {
	cache   *expirable.LRU[string, *Workspace]
	palette service.Palette
	log     zerolog.Logger
}

func NewStore(size int, ttl time.Duration, palette service.Palette, log zerolog.Logger) *Store {
	if size <= 0 {
		size = 1
	}
	s := &Store{palette: palette, log: log}
	s.cache = expirable.NewLRU[string, *Workspace](size, func(id string, _ *Workspace) {
		s.log.Debug().Str("session", id).Msg("session evicted")
	}, ttl)
	return s
}

func (s *Store) Create() *Workspace {
	w := New(uuid.NewString(), s.palette, s.log)
	s.cache.Add(w.ID, w)
	return w
}

// Get re-adds a hit so the ttl counts from the last use.
func (s *Store) Get(id string) (*Workspace, bool) {
	w, ok := s.cache.Get(id)
	if ok {
		s.cache.Add(id, w)
	}
	return w, ok
}

func (s *Store) Delete(id string) bool {
	return s.cache.Remove(id)
}

func (s *Store) Len() int { return s.cache.Len() }
